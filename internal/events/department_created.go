package events

import "time"

const DepartmentLifecycleTopic = "hr.department.lifecycle.v1"

type DepartmentCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	DepartmentID string    `json:"department_id"`
	Name         string    `json:"name"`
	Manager      string    `json:"manager"`
	OccurredAt   time.Time `json:"occurred_at"`
}
