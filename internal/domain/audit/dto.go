package audit

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/validator"
)

const (
	maxCellLength  = 512
	maxTitleLength = 200
	maxRowsPerRun  = 50000
)

// ========================================
// SINGLE DAY DTOs
// ========================================

type ClassifyDayRequest struct {
	Date     string `json:"date"`
	Punches  string `json:"punches"`
	Reason   string `json:"reason"`
	Schedule string `json:"schedule"`
}

// Validate only bounds the cell sizes. A date that is not a day marker is
// not invalid input, the row is rejected by the engine instead.
func (r *ClassifyDayRequest) Validate() error {
	var errs validator.ValidationErrors

	fields := []struct {
		name  string
		value string
	}{
		{"date", r.Date},
		{"punches", r.Punches},
		{"reason", r.Reason},
		{"schedule", r.Schedule},
	}
	for _, f := range fields {
		if len(f.value) > maxCellLength {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: fmt.Sprintf("%s must not exceed %d characters", f.name, maxCellLength),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClassifyDayResponse struct {
	Rejected bool       `json:"rejected"`
	Record   *DayRecord `json:"record"`
}

// ========================================
// AUDIT RUN DTOs
// ========================================

type CreateAuditRequest struct {
	Title     string  `json:"title"`
	Sheets    []Sheet `json:"sheets"`
	CreatedBy string  `json:"-"`
}

func (r *CreateAuditRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	if len(r.Title) > maxTitleLength {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
		})
	}

	if len(r.Sheets) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "sheets",
			Message: ErrNoSheets.Error(),
		})
	}

	totalRows := 0
	for i, sheet := range r.Sheets {
		if validator.IsEmpty(sheet.Header.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("sheets[%d].header.name", i),
				Message: "employee name is required",
			})
		}
		totalRows += len(sheet.Rows)
	}

	if totalRows > maxRowsPerRun {
		errs = append(errs, validator.ValidationError{
			Field:   "sheets",
			Message: fmt.Sprintf("a run must not exceed %d rows", maxRowsPerRun),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AuditRunResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CreatedBy     string `json:"created_by"`
	EmployeeCount int    `json:"employee_count"`
	DayCount      int    `json:"day_count"`
	AnomalyCount  int    `json:"anomaly_count"`
	HasReport     bool   `json:"has_report"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type AuditRunDetailResponse struct {
	AuditRunResponse
	Clients []ClientAudit `json:"clients"`
}

type AuditRunFilter struct {
	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortOrder string `json:"sort_order"` // asc, desc on created_at
}

func (f *AuditRunFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAuditRunResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Runs       []AuditRunResponse `json:"runs"`
}
