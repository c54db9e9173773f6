package stats

import (
	"math"
	"strconv"
	"strings"
	"time"

	"hr-platform/internal/employee"
)

const recentHireWindow = 30 * 24 * time.Hour

type DashboardStats struct {
	TotalEmployees  int            `json:"totalEmployees"`
	Departments     map[string]int `json:"departments"`
	AvgSalary       int            `json:"avgSalary"`
	RecentHires     int            `json:"recentHires"`
	ActiveEmployees int            `json:"activeEmployees"`
}

// ComputeDashboardStats derives the dashboard numbers from the full
// employee set. Pure: the caller supplies the evaluation time.
//
// Department grouping folds case and surrounding whitespace, but the
// map key keeps whichever raw spelling appeared first. "Engineering",
// "engineering " and " ENGINEERING" land under a single key.
func ComputeDashboardStats(employees []employee.Employee, now time.Time) DashboardStats {
	departments := make(map[string]int)
	canon := make(map[string]string) // folded name -> first-seen raw key

	var totalSalary float64
	recentHires := 0
	activeEmployees := 0
	cutoff := now.Add(-recentHireWindow)

	for _, emp := range employees {
		if emp.Department != "" {
			folded := strings.ToLower(strings.TrimSpace(emp.Department))
			key, seen := canon[folded]
			if !seen {
				key = emp.Department
				canon[folded] = key
			}
			departments[key]++
		}

		totalSalary += parseSalary(emp.Salary)

		if emp.Status == employee.StatusActive {
			activeEmployees++
		}

		if emp.CreatedAt.After(cutoff) {
			recentHires++
		}
	}

	avgSalary := 0
	if len(employees) > 0 {
		avgSalary = int(math.Round(totalSalary / float64(len(employees))))
	}

	return DashboardStats{
		TotalEmployees:  len(employees),
		Departments:     departments,
		AvgSalary:       avgSalary,
		RecentHires:     recentHires,
		ActiveEmployees: activeEmployees,
	}
}

func parseSalary(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
