package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

type LeaveAppliedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	Days       int       `json:"days"`
	OccurredAt time.Time `json:"occurred_at"`
}

type LeaveStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
