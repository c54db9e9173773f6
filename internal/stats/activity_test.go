package stats

import (
	"testing"
	"time"

	"hr-platform/internal/department"
	"hr-platform/internal/employee"
	"hr-platform/internal/leave"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildRecentActivity_MergesSortsAndCaps(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	var empls []employee.Employee
	for i := 0; i < 8; i++ {
		empls = append(empls, employee.Employee{
			ID:         uuid.New(),
			Name:       "Employee",
			Department: "Eng",
			Status:     employee.StatusActive,
			CreatedAt:  now.Add(-time.Duration(i+1) * time.Hour),
		})
	}

	res := BuildRecentActivity(empls, nil, nil, now)

	assert.Len(t, res, 6)
	for i := 1; i < len(res); i++ {
		assert.False(t, res[i].Timestamp.After(res[i-1].Timestamp), "feed must be newest first")
	}
}

func TestBuildRecentActivity_EventTexts(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-2 * time.Hour)

	empls := []employee.Employee{{
		ID:         uuid.New(),
		Name:       "John Doe",
		Department: "Engineering",
		Status:     employee.StatusOnLeave,
		CreatedAt:  recent,
		UpdatedAt:  recent.Add(30 * time.Minute),
	}}
	approvedAt := recent.Add(time.Hour)
	leaves := []leave.Leave{{
		ID:           uuid.New(),
		EmployeeID:   "John Doe",
		LeaveType:    leave.TypeAnnual,
		Status:       leave.StatusApproved,
		AppliedDate:  recent,
		ApprovedDate: &approvedAt,
	}}
	depts := []department.Department{{
		ID:        uuid.New(),
		Name:      "Engineering",
		Manager:   "Jane Smith",
		CreatedAt: recent,
	}}

	res := BuildRecentActivity(empls, leaves, depts, now)

	texts := make([]string, len(res))
	for i, a := range res {
		texts[i] = a.Text
	}

	assert.Contains(t, texts, "Employee John Doe added to Engineering")
	assert.Contains(t, texts, "John Doe status changed to on-leave")
	assert.Contains(t, texts, "John Doe applied for annual leave")
	assert.Contains(t, texts, "Leave request by John Doe approved")
	assert.Contains(t, texts, "Department 'Engineering' created with manager Jane Smith")
}

func TestBuildRecentActivity_DropsUndatableEvents(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	empls := []employee.Employee{
		{ID: uuid.New(), Name: "Zero", Department: "Eng", Status: employee.StatusActive},
		{ID: uuid.New(), Name: "Future", Department: "Eng", Status: employee.StatusActive, CreatedAt: now.Add(time.Hour)},
		{ID: uuid.New(), Name: "Stale", Department: "Eng", Status: employee.StatusActive, CreatedAt: now.AddDate(0, 0, -8)},
	}

	res := BuildRecentActivity(empls, nil, nil, now)

	assert.Len(t, res, 1)
	assert.Equal(t, "No recent activities", res[0].Text)
	assert.Equal(t, "Just now", res[0].Time)
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ts   time.Time
		want string
		ok   bool
	}{
		{"just now", now.Add(-3 * time.Second), "Just now", true},
		{"seconds", now.Add(-45 * time.Second), "45 seconds ago", true},
		{"one minute", now.Add(-1 * time.Minute), "1 min ago", true},
		{"minutes", now.Add(-5 * time.Minute), "5 mins ago", true},
		{"one hour", now.Add(-1 * time.Hour), "1 hour ago", true},
		{"hours", now.Add(-3 * time.Hour), "3 hours ago", true},
		{"days", now.Add(-49 * time.Hour), "2 days ago", true},
		{"seven whole days still shown", now.Add(-(7*24 + 23) * time.Hour), "7 days ago", true},
		{"zero", time.Time{}, "", false},
		{"future", now.Add(time.Minute), "", false},
		{"beyond window", now.AddDate(0, 0, -8), "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := timeAgo(tc.ts, now)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
