package department

import (
	"time"

	"github.com/google/uuid"
)

// Department.Name and Employee.Department are intentionally unlinked:
// employee counts are recomputed per read by case-insensitive name match,
// never stored on the row.
type Department struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"index"`
	Manager     string
	Budget      string // currency-formatted text, e.g. "$1,200,000"
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
