package audit

import "errors"

// Audit domain errors
var (
	ErrAuditRunNotFound   = errors.New("audit run not found")
	ErrNoSheets           = errors.New("at least one timesheet section is required")
	ErrReportNotAvailable = errors.New("report has not been generated for this audit run")
)
