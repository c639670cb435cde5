package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/auditor"
	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAuditorNotFound), errors.Is(err, auditor.ErrAuditorNotFound):
		NotFound(w, "Auditor not found")
	case errors.Is(err, auditor.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")

	// Audit domain errors
	case errors.Is(err, audit.ErrAuditRunNotFound):
		NotFound(w, "Audit run not found")
	case errors.Is(err, audit.ErrReportNotAvailable):
		NotFound(w, "Report not available for this audit run")
	case errors.Is(err, audit.ErrNoSheets):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
