package app

import (
	"hr-platform/internal/department"
	"hr-platform/internal/employee"
	"hr-platform/internal/leave"

	"gorm.io/gorm"
)

const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
    id             UUID PRIMARY KEY,
    request_id     TEXT,
    aggregate_type TEXT NOT NULL,
    aggregate_id   TEXT NOT NULL,
    event_type     TEXT NOT NULL,
    topic          TEXT NOT NULL,
    payload        JSONB NOT NULL,
    status         TEXT NOT NULL DEFAULT 'pending',
    retry_count    INT NOT NULL DEFAULT 0,
    error_message  TEXT,
    next_retry_at  TIMESTAMPTZ,
    processed_at   TIMESTAMPTZ,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events (status, created_at);
`

func runMigrations(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&department.Department{},
		&leave.Leave{},
	); err != nil {
		return err
	}

	// Tabel outbox dikelola lewat SQL mentah, bukan model gorm
	return gormDB.Exec(outboxTableDDL).Error
}
