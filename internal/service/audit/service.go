package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-auditor/internal/service/report"
	"github.com/google/uuid"
)

// ServiceConfig holds the tunables of the audit service.
type ServiceConfig struct {
	Workers   int
	Retention time.Duration
}

type AuditServiceImpl struct {
	withTx database.TxRunner
	audit.AuditRepository
	report.ReportService
	engine    *Engine
	workers   int
	retention time.Duration
	now       func() time.Time
}

func NewAuditService(withTx database.TxRunner, auditRepository audit.AuditRepository, reportService report.ReportService, engine *Engine, cfg ServiceConfig) audit.AuditService {
	return &AuditServiceImpl{
		withTx:          withTx,
		AuditRepository: auditRepository,
		ReportService:   reportService,
		engine:          engine,
		workers:         cfg.Workers,
		retention:       cfg.Retention,
		now:             time.Now,
	}
}

// ClassifyDay implements audit.AuditService.
func (s *AuditServiceImpl) ClassifyDay(ctx context.Context, req audit.ClassifyDayRequest) (audit.ClassifyDayResponse, error) {
	if err := req.Validate(); err != nil {
		return audit.ClassifyDayResponse{}, err
	}

	record, ok := s.engine.ClassifyDay(req.Date, req.Punches, req.Reason, req.Schedule)
	if !ok {
		return audit.ClassifyDayResponse{Rejected: true}, nil
	}

	return audit.ClassifyDayResponse{Record: &record}, nil
}

// CreateAuditRun implements audit.AuditService.
func (s *AuditServiceImpl) CreateAuditRun(ctx context.Context, req audit.CreateAuditRequest) (audit.AuditRunDetailResponse, error) {
	if err := req.Validate(); err != nil {
		return audit.AuditRunDetailResponse{}, err
	}

	clients, err := Aggregate(ctx, s.engine, req.Sheets, s.workers)
	if err != nil {
		return audit.AuditRunDetailResponse{}, fmt.Errorf("failed to audit timesheets: %w", err)
	}
	employeeCount, dayCount, anomalyCount := Totals(clients)

	runID, err := uuid.NewV7()
	if err != nil {
		return audit.AuditRunDetailResponse{}, fmt.Errorf("failed to generate audit run ID: %w", err)
	}

	var created audit.AuditRun
	err = s.withTx(ctx, func(txCtx context.Context) error {
		created, err = s.AuditRepository.CreateRun(txCtx, audit.AuditRun{
			ID:            runID.String(),
			Title:         req.Title,
			CreatedBy:     req.CreatedBy,
			EmployeeCount: employeeCount,
			DayCount:      dayCount,
			AnomalyCount:  anomalyCount,
		})
		if err != nil {
			return err
		}

		position := 0
		for ci := range clients {
			for ei := range clients[ci].Employees {
				employee := &clients[ci].Employees[ei]

				row, err := s.AuditRepository.CreateEmployee(txCtx, audit.AuditEmployeeRow{
					RunID:        created.ID,
					Position:     position,
					Header:       employee.Header,
					DayCount:     employee.Summary.DaysAudited,
					AnomalyCount: countAnomalies(employee.Days),
				})
				if err != nil {
					return err
				}
				employee.ID = row.ID
				position++

				days := make([]audit.AuditDayRow, 0, len(employee.Days))
				for di, day := range employee.Days {
					days = append(days, audit.AuditDayRow{EmployeeID: row.ID, Position: di, Record: day})
				}
				if err := s.AuditRepository.CreateDays(txCtx, days); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return audit.AuditRunDetailResponse{}, fmt.Errorf("failed to persist audit run: %w", err)
	}

	slog.Info("audit run created",
		"run_id", created.ID,
		"employees", employeeCount,
		"days", dayCount,
		"anomalies", anomalyCount,
	)

	// The run is already committed; a failed report leaves it without one.
	if path, err := s.renderAndStore(ctx, created, clients); err != nil {
		slog.Error("failed to generate inconsistency report", "run_id", created.ID, "error", err)
	} else {
		created.ReportPath = &path
	}

	return audit.AuditRunDetailResponse{
		AuditRunResponse: mapRunToResponse(created),
		Clients:          clients,
	}, nil
}

func (s *AuditServiceImpl) renderAndStore(ctx context.Context, run audit.AuditRun, clients []audit.ClientAudit) (string, error) {
	pdf, err := s.ReportService.RenderInconsistencyPDF(run.Title, run.CreatedAt, clients)
	if err != nil {
		return "", err
	}

	path, err := s.ReportService.StoreReport(ctx, run.ID, pdf)
	if err != nil {
		return "", err
	}

	if err := s.AuditRepository.SetReportPath(ctx, run.ID, path); err != nil {
		return "", err
	}

	return path, nil
}

// GetAuditRun implements audit.AuditService.
func (s *AuditServiceImpl) GetAuditRun(ctx context.Context, id string) (audit.AuditRunDetailResponse, error) {
	run, err := s.getRun(ctx, id)
	if err != nil {
		return audit.AuditRunDetailResponse{}, err
	}

	employees, err := s.AuditRepository.ListEmployees(ctx, id)
	if err != nil {
		return audit.AuditRunDetailResponse{}, fmt.Errorf("failed to list audit employees: %w", err)
	}

	days, err := s.AuditRepository.ListDays(ctx, id)
	if err != nil {
		return audit.AuditRunDetailResponse{}, fmt.Errorf("failed to list audit days: %w", err)
	}

	return audit.AuditRunDetailResponse{
		AuditRunResponse: mapRunToResponse(run),
		Clients:          rebuildClients(employees, days),
	}, nil
}

// getRun treats a malformed ID as an unknown run.
func (s *AuditServiceImpl) getRun(ctx context.Context, id string) (audit.AuditRun, error) {
	if !validator.IsValidUUID(id) {
		return audit.AuditRun{}, audit.ErrAuditRunNotFound
	}
	return s.AuditRepository.GetRun(ctx, id)
}

// rebuildClients groups persisted employee sections by client, keeping the
// order in which each client first appears.
func rebuildClients(employees []audit.AuditEmployeeRow, days map[string][]audit.DayRecord) []audit.ClientAudit {
	clients := []audit.ClientAudit{}
	index := make(map[string]int)

	for _, e := range employees {
		records := days[e.ID]
		if records == nil {
			records = []audit.DayRecord{}
		}

		i, ok := index[e.Header.Client]
		if !ok {
			i = len(clients)
			index[e.Header.Client] = i
			clients = append(clients, audit.ClientAudit{Client: e.Header.Client})
		}
		clients[i].Employees = append(clients[i].Employees, audit.EmployeeAudit{
			ID:      e.ID,
			Header:  e.Header,
			Days:    records,
			Summary: Summarize(records),
		})
	}

	return clients
}

// ListAuditRuns implements audit.AuditService.
func (s *AuditServiceImpl) ListAuditRuns(ctx context.Context, filter audit.AuditRunFilter) (audit.ListAuditRunResponse, error) {
	if err := filter.Validate(); err != nil {
		return audit.ListAuditRunResponse{}, err
	}

	runs, total, err := s.AuditRepository.ListRuns(ctx, filter)
	if err != nil {
		return audit.ListAuditRunResponse{}, fmt.Errorf("failed to list audit runs: %w", err)
	}

	responses := make([]audit.AuditRunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, mapRunToResponse(run))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return audit.ListAuditRunResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Runs:       responses,
	}, nil
}

// GetReport implements audit.AuditService.
func (s *AuditServiceImpl) GetReport(ctx context.Context, id string) ([]byte, error) {
	run, err := s.getRun(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.ReportPath == nil || *run.ReportPath == "" {
		return nil, audit.ErrReportNotAvailable
	}

	pdf, err := s.ReportService.LoadReport(ctx, *run.ReportPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, audit.ErrReportNotAvailable
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	return pdf, nil
}

// DeleteAuditRun implements audit.AuditService.
func (s *AuditServiceImpl) DeleteAuditRun(ctx context.Context, id string) error {
	run, err := s.getRun(ctx, id)
	if err != nil {
		return err
	}

	if err := s.AuditRepository.DeleteRun(ctx, id); err != nil {
		return err
	}

	if run.ReportPath != nil && *run.ReportPath != "" {
		s.removeReport(ctx, *run.ReportPath)
	}

	slog.Info("audit run deleted", "run_id", id)
	return nil
}

// PurgeExpired implements audit.AuditService.
func (s *AuditServiceImpl) PurgeExpired(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}

	cutoff := s.now().Add(-s.retention)
	paths, err := s.AuditRepository.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired audit runs: %w", err)
	}

	for _, path := range paths {
		if path != "" {
			s.removeReport(ctx, path)
		}
	}

	return int64(len(paths)), nil
}

func (s *AuditServiceImpl) removeReport(ctx context.Context, path string) {
	if err := s.ReportService.DeleteReport(ctx, path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to delete report file", "path", path, "error", err)
	}
}

func countAnomalies(days []audit.DayRecord) int {
	n := 0
	for _, d := range days {
		n += len(d.Anomalies)
	}
	return n
}

func mapRunToResponse(run audit.AuditRun) audit.AuditRunResponse {
	return audit.AuditRunResponse{
		ID:            run.ID,
		Title:         run.Title,
		CreatedBy:     run.CreatedBy,
		EmployeeCount: run.EmployeeCount,
		DayCount:      run.DayCount,
		AnomalyCount:  run.AnomalyCount,
		HasReport:     run.ReportPath != nil && *run.ReportPath != "",
		CreatedAt:     run.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     run.UpdatedAt.Format(time.RFC3339),
	}
}
