package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// rows per INSERT statement, keeps a statement well below the 65535 parameter limit
const dayInsertChunk = 1000

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

// CreateRun implements audit.AuditRepository.
func (r *auditRepository) CreateRun(ctx context.Context, run audit.AuditRun) (audit.AuditRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_runs (id, title, created_by, employee_count, day_count, anomaly_count, report_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, created_by, employee_count, day_count, anomaly_count, report_path, created_at, updated_at
	`

	var created audit.AuditRun
	err := q.QueryRow(ctx, query,
		run.ID, run.Title, run.CreatedBy, run.EmployeeCount, run.DayCount, run.AnomalyCount, run.ReportPath,
	).Scan(
		&created.ID, &created.Title, &created.CreatedBy,
		&created.EmployeeCount, &created.DayCount, &created.AnomalyCount,
		&created.ReportPath, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return audit.AuditRun{}, fmt.Errorf("failed to create audit run: %w", err)
	}

	return created, nil
}

// CreateEmployee implements audit.AuditRepository.
func (r *auditRepository) CreateEmployee(ctx context.Context, employee audit.AuditEmployeeRow) (audit.AuditEmployeeRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_employees (
			run_id, position, client, name, registration, tax_id, role, schedule, period,
			day_count, anomaly_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	h := employee.Header
	err := q.QueryRow(ctx, query,
		employee.RunID, employee.Position,
		h.Client, h.Name, h.Registration, h.TaxID, h.Role, h.Schedule, h.Period,
		employee.DayCount, employee.AnomalyCount,
	).Scan(&employee.ID)
	if err != nil {
		return audit.AuditEmployeeRow{}, fmt.Errorf("failed to create audit employee: %w", err)
	}

	return employee, nil
}

// CreateDays implements audit.AuditRepository.
func (r *auditRepository) CreateDays(ctx context.Context, days []audit.AuditDayRow) error {
	if len(days) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	for start := 0; start < len(days); start += dayInsertChunk {
		end := start + dayInsertChunk
		if end > len(days) {
			end = len(days)
		}
		chunk := days[start:end]

		valueStrings := make([]string, 0, len(chunk))
		valueArgs := make([]interface{}, 0, len(chunk)*8)

		for i, d := range chunk {
			punchesJSON, err := json.Marshal(d.Record.Punches)
			if err != nil {
				return fmt.Errorf("failed to marshal punches: %w", err)
			}
			anomaliesJSON, err := json.Marshal(d.Record.Anomalies)
			if err != nil {
				return fmt.Errorf("failed to marshal anomalies: %w", err)
			}

			base := i * 8
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
			))
			valueArgs = append(valueArgs,
				d.EmployeeID,
				d.Position,
				d.Record.Date,
				punchesJSON,
				d.Record.ResolvedReason,
				string(d.Record.Category),
				d.Record.Justification,
				anomaliesJSON,
			)
		}

		query := fmt.Sprintf(`
			INSERT INTO audit_days (employee_id, position, date, punches, resolved_reason, category, justification, anomalies)
			VALUES %s
		`, strings.Join(valueStrings, ", "))

		if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
			return fmt.Errorf("failed to batch create audit days: %w", err)
		}
	}

	return nil
}

// GetRun implements audit.AuditRepository.
func (r *auditRepository) GetRun(ctx context.Context, id string) (audit.AuditRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, created_by, employee_count, day_count, anomaly_count, report_path, created_at, updated_at
		FROM audit_runs
		WHERE id = $1
	`

	var run audit.AuditRun
	err := q.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.Title, &run.CreatedBy,
		&run.EmployeeCount, &run.DayCount, &run.AnomalyCount,
		&run.ReportPath, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return audit.AuditRun{}, audit.ErrAuditRunNotFound
		}
		return audit.AuditRun{}, fmt.Errorf("failed to get audit run by ID: %w", err)
	}

	return run, nil
}

// ListRuns implements audit.AuditRepository.
func (r *auditRepository) ListRuns(ctx context.Context, filter audit.AuditRunFilter) ([]audit.AuditRun, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM audit_runs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit runs: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT id, title, created_by, employee_count, day_count, anomaly_count, report_path, created_at, updated_at
		FROM audit_runs
		ORDER BY created_at %s, id %s
		LIMIT $1 OFFSET $2
	`, sortOrder, sortOrder)

	rows, err := q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit runs: %w", err)
	}
	defer rows.Close()

	var runs []audit.AuditRun
	for rows.Next() {
		var run audit.AuditRun
		err := rows.Scan(
			&run.ID, &run.Title, &run.CreatedBy,
			&run.EmployeeCount, &run.DayCount, &run.AnomalyCount,
			&run.ReportPath, &run.CreatedAt, &run.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate audit runs: %w", err)
	}

	return runs, total, nil
}

// ListEmployees implements audit.AuditRepository.
func (r *auditRepository) ListEmployees(ctx context.Context, runID string) ([]audit.AuditEmployeeRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, run_id, position, client, name, registration, tax_id, role, schedule, period,
			day_count, anomaly_count
		FROM audit_employees
		WHERE run_id = $1
		ORDER BY position ASC
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit employees: %w", err)
	}
	defer rows.Close()

	var employees []audit.AuditEmployeeRow
	for rows.Next() {
		var e audit.AuditEmployeeRow
		err := rows.Scan(
			&e.ID, &e.RunID, &e.Position,
			&e.Header.Client, &e.Header.Name, &e.Header.Registration, &e.Header.TaxID,
			&e.Header.Role, &e.Header.Schedule, &e.Header.Period,
			&e.DayCount, &e.AnomalyCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit employees: %w", err)
	}

	return employees, nil
}

// ListDays implements audit.AuditRepository.
func (r *auditRepository) ListDays(ctx context.Context, runID string) (map[string][]audit.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.employee_id, d.date, d.punches, d.resolved_reason, d.category, d.justification, d.anomalies
		FROM audit_days d
		JOIN audit_employees e ON e.id = d.employee_id
		WHERE e.run_id = $1
		ORDER BY e.position ASC, d.position ASC
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit days: %w", err)
	}
	defer rows.Close()

	days := make(map[string][]audit.DayRecord)
	for rows.Next() {
		var (
			employeeID    string
			record        audit.DayRecord
			category      string
			punchesJSON   []byte
			anomaliesJSON []byte
		)
		err := rows.Scan(
			&employeeID, &record.Date, &punchesJSON, &record.ResolvedReason,
			&category, &record.Justification, &anomaliesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit day: %w", err)
		}
		record.Category = audit.DayCategory(category)

		if err := json.Unmarshal(punchesJSON, &record.Punches); err != nil {
			return nil, fmt.Errorf("failed to unmarshal punches: %w", err)
		}
		if err := json.Unmarshal(anomaliesJSON, &record.Anomalies); err != nil {
			return nil, fmt.Errorf("failed to unmarshal anomalies: %w", err)
		}
		if record.Punches == nil {
			record.Punches = []string{}
		}
		if record.Anomalies == nil {
			record.Anomalies = []audit.Anomaly{}
		}

		days[employeeID] = append(days[employeeID], record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit days: %w", err)
	}

	return days, nil
}

// SetReportPath implements audit.AuditRepository.
func (r *auditRepository) SetReportPath(ctx context.Context, id string, path string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE audit_runs SET report_path = $1, updated_at = NOW() WHERE id = $2`

	commandTag, err := q.Exec(ctx, query, path, id)
	if err != nil {
		return fmt.Errorf("failed to set report path: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return audit.ErrAuditRunNotFound
	}

	return nil
}

// DeleteRun implements audit.AuditRepository.
func (r *auditRepository) DeleteRun(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM audit_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete audit run: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return audit.ErrAuditRunNotFound
	}

	return nil
}

// DeleteOlderThan implements audit.AuditRepository.
func (r *auditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM audit_runs
		WHERE created_at < $1
		RETURNING COALESCE(report_path, '')
	`

	rows, err := q.Query(ctx, query, cutoff.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to delete expired audit runs: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan report path: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expired audit runs: %w", err)
	}

	return paths, nil
}
