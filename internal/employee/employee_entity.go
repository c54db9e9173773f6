package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on-leave"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"index"`
	Email        string    `gorm:"uniqueIndex:uq_employee_email"`
	Phone        string
	Department   string `gorm:"index"` // free text, grouped case-insensitively on read
	Salary       string // stored as submitted, parsed as float for aggregation
	Status       string `gorm:"index"`
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave:
		return true
	}
	return false
}
