package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/storage"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const (
	reportTitle   = "TIMESHEET INCONSISTENCY REPORT"
	noPunches     = "---"
	punchJoiner   = " - "
	anomalyJoiner = " / "
)

var (
	pdfHeaderColor  = props.Color{Red: 15, Green: 23, Blue: 42}
	pdfMutedColor   = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor    = props.Color{Red: 200, Green: 200, Blue: 200}
	pdfAnomalyColor = props.Color{Red: 200, Green: 0, Blue: 0}
)

type ReportService interface {
	// RenderInconsistencyPDF renders the employees with at least one anomalous day
	RenderInconsistencyPDF(title string, generatedAt time.Time, clients []audit.ClientAudit) ([]byte, error)

	// StoreReport saves a rendered report for a run and returns its storage key
	StoreReport(ctx context.Context, runID string, pdf []byte) (string, error)

	// LoadReport reads a stored report
	LoadReport(ctx context.Context, path string) ([]byte, error)

	DeleteReport(ctx context.Context, path string) error
}

type reportServiceImpl struct {
	storage storage.FileStorage
}

func NewReportService(storage storage.FileStorage) ReportService {
	return &reportServiceImpl{
		storage: storage,
	}
}

// ReportPath is the storage key of a run's report.
func ReportPath(runID string) string {
	return fmt.Sprintf("reports/%s.pdf", runID)
}

// FlaggedEmployees returns the employees of a client with at least one anomalous day.
func FlaggedEmployees(client audit.ClientAudit) []audit.EmployeeAudit {
	var flagged []audit.EmployeeAudit
	for _, e := range client.Employees {
		for _, d := range e.Days {
			if d.HasAnomalies() {
				flagged = append(flagged, e)
				break
			}
		}
	}
	return flagged
}

// FormatPunches joins punches for display, "---" when the day has none.
func FormatPunches(punches []string) string {
	if len(punches) == 0 {
		return noPunches
	}
	return strings.Join(punches, punchJoiner)
}

// FormatAnomalies joins anomaly labels for display.
func FormatAnomalies(day audit.DayRecord) string {
	return strings.Join(day.AnomalyLabels(), anomalyJoiner)
}

// RenderInconsistencyPDF implements ReportService.
func (s *reportServiceImpl) RenderInconsistencyPDF(title string, generatedAt time.Time, clients []audit.ClientAudit) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, reportTitle, props.Text{
			Style: fontstyle.Bold,
			Size:  14,
			Align: align.Center,
			Color: &pdfHeaderColor,
		}),
	)
	subtitle := generatedAt.Format("2006-01-02 15:04")
	if title != "" {
		subtitle = title + " | " + subtitle
	}
	m.AddRow(6,
		text.NewCol(12, subtitle, props.Text{
			Size:  9,
			Align: align.Center,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	rendered := 0
	for _, client := range clients {
		flagged := FlaggedEmployees(client)
		if len(flagged) == 0 {
			continue
		}

		m.AddRow(10,
			text.NewCol(12, "CLIENT: "+client.Client, props.Text{
				Style: fontstyle.Bold,
				Size:  10,
				Color: &pdfHeaderColor,
			}),
		)

		for _, employee := range flagged {
			addEmployeeSection(m, employee)
			rendered++
		}
	}

	if rendered == 0 {
		m.AddRow(10,
			text.NewCol(12, "No inconsistencies detected.", props.Text{
				Size:  10,
				Align: align.Center,
				Color: &pdfMutedColor,
			}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func addEmployeeSection(m core.Maroto, employee audit.EmployeeAudit) {
	h := employee.Header
	info := fmt.Sprintf("NAME: %s | REG: %s | TAX ID: %s | ROLE: %s", h.Name, h.Registration, h.TaxID, h.Role)
	schedule := fmt.Sprintf("SCHEDULE: %s | PERIOD: %s", h.Schedule, h.Period)

	m.AddRow(2)
	m.AddRow(5, text.NewCol(12, info, props.Text{Style: fontstyle.Bold, Size: 7}))
	m.AddRow(5, text.NewCol(12, schedule, props.Text{Style: fontstyle.Bold, Size: 7}))

	m.AddRow(6,
		text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center}),
		text.NewCol(3, "Punches", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center}),
		text.NewCol(7, "Detected inconsistencies", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center}),
	)
	m.AddRow(1, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	for _, day := range employee.Days {
		if !day.HasAnomalies() {
			continue
		}
		m.AddAutoRow(
			text.NewCol(2, day.Date, props.Text{Size: 8, Align: align.Center}),
			text.NewCol(3, FormatPunches(day.Punches), props.Text{Size: 8, Align: align.Center}),
			text.NewCol(7, FormatAnomalies(day), props.Text{Size: 8, Color: &pdfAnomalyColor}),
		)
	}
	m.AddRow(4)
}

// StoreReport implements ReportService.
func (s *reportServiceImpl) StoreReport(ctx context.Context, runID string, pdf []byte) (string, error) {
	path, err := s.storage.Upload(ctx, bytes.NewReader(pdf), ReportPath(runID), "application/pdf")
	if err != nil {
		return "", fmt.Errorf("failed to store report: %w", err)
	}
	return path, nil
}

// LoadReport implements ReportService.
func (s *reportServiceImpl) LoadReport(ctx context.Context, path string) ([]byte, error) {
	rc, err := s.storage.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return content, nil
}

// DeleteReport implements ReportService.
func (s *reportServiceImpl) DeleteReport(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}
