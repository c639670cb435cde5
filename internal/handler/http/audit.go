package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-auditor/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-auditor/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// maxAuditBodyBytes caps the size of an uploaded audit run.
const maxAuditBodyBytes = 32 << 20

type AuditHandler interface {
	ClassifyDay(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{
		auditService: auditService,
	}
}

// ClassifyDay implements AuditHandler.
func (h *auditHandlerImpl) ClassifyDay(w http.ResponseWriter, r *http.Request) {
	var req audit.ClassifyDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClassifyDay decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.auditService.ClassifyDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements AuditHandler.
func (h *auditHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAuditBodyBytes)

	var req audit.CreateAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAuditRun decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CreatedBy = middleware.AuditorID(r)

	result, err := h.auditService.CreateAuditRun(r.Context(), req)
	if err != nil {
		slog.Error("CreateAuditRun service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Audit run created successfully", result)
}

// List implements AuditHandler.
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter audit.AuditRunFilter

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	result, err := h.auditService.ListAuditRuns(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AuditHandler.
func (h *auditHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.auditService.GetAuditRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Report implements AuditHandler.
func (h *auditHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pdf, err := h.auditService.GetReport(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.PDF(w, id+".pdf", pdf)
}

// Delete implements AuditHandler.
func (h *auditHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.auditService.DeleteAuditRun(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Audit run deleted successfully", nil)
}
