package stats

import (
	"fmt"
	"sort"
	"time"

	"hr-platform/internal/department"
	"hr-platform/internal/employee"
	"hr-platform/internal/leave"
)

const (
	activityMaxAgeDays = 7
	maxActivities      = 6
)

type ActivityItem struct {
	Icon      string    `json:"icon"`
	Text      string    `json:"text"`
	Time      string    `json:"time"`
	Color     string    `json:"color"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildRecentActivity merges lifecycle events from the three entity
// sets into a single feed: newest first, capped at six entries.
// Events with a zero or future timestamp, or older than seven whole
// days, are dropped rather than shown with a bogus age. An empty feed gets a
// single placeholder entry.
func BuildRecentActivity(
	employees []employee.Employee,
	leaves []leave.Leave,
	departments []department.Department,
	now time.Time,
) []ActivityItem {
	var activities []ActivityItem

	push := func(icon, text, color string, ts time.Time) {
		age, ok := timeAgo(ts, now)
		if !ok {
			return
		}
		activities = append(activities, ActivityItem{
			Icon:      icon,
			Text:      text,
			Time:      age,
			Color:     color,
			Timestamp: ts,
		})
	}

	for _, emp := range employees {
		push("bi-person-plus",
			fmt.Sprintf("Employee %s added to %s", emp.Name, emp.Department),
			"#10b981", emp.CreatedAt)

		if emp.Status == employee.StatusOnLeave {
			ts := emp.UpdatedAt
			if ts.IsZero() {
				ts = emp.CreatedAt
			}
			push("bi-calendar-x",
				fmt.Sprintf("%s status changed to on-leave", emp.Name),
				"#f59e0b", ts)
		}
	}

	for _, l := range leaves {
		push("bi-calendar-plus",
			fmt.Sprintf("%s applied for %s leave", l.EmployeeID, l.LeaveType),
			"#3b82f6", l.AppliedDate)

		if l.Status == leave.StatusApproved {
			ts := l.AppliedDate
			if l.ApprovedDate != nil {
				ts = *l.ApprovedDate
			}
			push("bi-check-circle",
				fmt.Sprintf("Leave request by %s approved", l.EmployeeID),
				"#10b981", ts)
		}
	}

	for _, d := range departments {
		push("bi-building",
			fmt.Sprintf("Department '%s' created with manager %s", d.Name, d.Manager),
			"#8b5cf6", d.CreatedAt)
	}

	if len(activities) == 0 {
		return []ActivityItem{{
			Icon:      "bi-graph-up",
			Text:      "No recent activities",
			Time:      "Just now",
			Color:     "#6b7280",
			Timestamp: now,
		}}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})

	if len(activities) > maxActivities {
		activities = activities[:maxActivities]
	}
	return activities
}

// timeAgo renders a human age label. ok is false when the timestamp
// carries no displayable age: zero, in the future, or past the feed
// window.
func timeAgo(ts, now time.Time) (string, bool) {
	if ts.IsZero() || ts.After(now) {
		return "", false
	}

	diff := now.Sub(ts)
	secs := int(diff.Seconds())
	mins := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	// Batasnya hari utuh: umur 7 hari 23 jam masih "7 days ago"
	if days > activityMaxAgeDays {
		return "", false
	}

	switch {
	case secs < 10:
		return "Just now", true
	case secs < 60:
		return fmt.Sprintf("%d seconds ago", secs), true
	case mins < 60:
		return fmt.Sprintf("%d min%s ago", mins, plural(mins)), true
	case hours < 24:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours)), true
	default:
		return fmt.Sprintf("%d day%s ago", days, plural(days)), true
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
