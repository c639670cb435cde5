package audit

import (
	"context"
	"time"
)

// AuditRepository defines data access methods for persisted audit runs.
type AuditRepository interface {
	// CreateRun inserts the run header
	CreateRun(ctx context.Context, run AuditRun) (AuditRun, error)

	// CreateEmployee inserts one audited employee section of a run
	CreateEmployee(ctx context.Context, employee AuditEmployeeRow) (AuditEmployeeRow, error)

	// CreateDays bulk inserts the day records of an employee section
	CreateDays(ctx context.Context, days []AuditDayRow) error

	GetRun(ctx context.Context, id string) (AuditRun, error)
	ListRuns(ctx context.Context, filter AuditRunFilter) ([]AuditRun, int64, error)

	// ListEmployees returns the employee sections of a run in source order
	ListEmployees(ctx context.Context, runID string) ([]AuditEmployeeRow, error)

	// ListDays returns the day records of a run keyed by employee section ID, in source order
	ListDays(ctx context.Context, runID string) (map[string][]DayRecord, error)

	SetReportPath(ctx context.Context, id string, path string) error
	DeleteRun(ctx context.Context, id string) error

	// DeleteOlderThan removes runs created before cutoff and returns their report paths
	DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]string, error)
}
