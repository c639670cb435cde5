package audit

import (
	"context"
)

// AuditService defines business logic for timesheet audits
type AuditService interface {
	// ClassifyDay audits a single row without persisting it
	ClassifyDay(ctx context.Context, req ClassifyDayRequest) (ClassifyDayResponse, error)

	// CreateAuditRun audits every sheet, persists the result and renders the inconsistency report
	CreateAuditRun(ctx context.Context, req CreateAuditRequest) (AuditRunDetailResponse, error)

	// GetAuditRun retrieves a persisted run with its employees and days
	GetAuditRun(ctx context.Context, id string) (AuditRunDetailResponse, error)

	// ListAuditRuns retrieves runs with pagination
	ListAuditRuns(ctx context.Context, filter AuditRunFilter) (ListAuditRunResponse, error)

	// GetReport returns the rendered PDF of a run
	GetReport(ctx context.Context, id string) ([]byte, error)

	// DeleteAuditRun removes a run and its report
	DeleteAuditRun(ctx context.Context, id string) error

	// PurgeExpired removes runs older than the configured retention
	PurgeExpired(ctx context.Context) (int64, error)
}
