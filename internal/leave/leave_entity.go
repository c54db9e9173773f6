package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeAnnual    = "annual"
	TypeSick      = "sick"
	TypeMaternity = "maternity"
	TypeEmergency = "emergency"
)

func ValidLeaveType(t string) bool {
	switch t {
	case TypeAnnual, TypeSick, TypeMaternity, TypeEmergency:
		return true
	}
	return false
}

type Leave struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// EmployeeID is the reference exactly as submitted (name or id).
	// EmployeeRef is the employee resolved from it at apply time; the
	// approval side effect uses only the resolved reference.
	EmployeeID  string     `gorm:"index"`
	EmployeeRef *uuid.UUID `gorm:"type:uuid;index"`

	LeaveType    string
	StartDate    time.Time
	EndDate      time.Time
	Days         int
	Reason       string
	Status       string `gorm:"index"`
	AppliedDate  time.Time
	ApprovedBy   *string
	ApprovedDate *time.Time
	UpdatedAt    time.Time
}
