package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-auditor/internal/config"
	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/storage"
	auditService "github.com/cmlabs-hris/timesheet-auditor/internal/service/audit"
	"github.com/cmlabs-hris/timesheet-auditor/internal/service/report"
	"github.com/spf13/cobra"
)

type auditOptions struct {
	pdfPath        string
	vocabularyPath string
	workers        int
	title          string
}

func newAuditCmd() *cobra.Command {
	opts := auditOptions{}

	cmd := &cobra.Command{
		Use:   "audit <sheets.json>",
		Short: "Audit extracted timesheets and print per-employee anomaly counts",
		Long: `Audit reads a JSON document of extracted timesheet sheets, either an array of
sheets or an object with "title" and "sheets", and prints one line per employee.
Use "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write the inconsistency report to this PDF file")
	cmd.Flags().StringVar(&opts.vocabularyPath, "vocabulary", "", "YAML file extending the justification vocabulary")
	cmd.Flags().IntVar(&opts.workers, "workers", auditService.DefaultWorkers, "number of rows classified concurrently")
	cmd.Flags().StringVar(&opts.title, "title", "", "report title, overrides the title in the input")

	return cmd
}

func runAudit(cmd *cobra.Command, input string, opts auditOptions) error {
	req, err := readSheets(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	if opts.title != "" {
		req.Title = opts.title
	}
	if err := req.Validate(); err != nil {
		return err
	}

	engine, err := newEngine(opts.vocabularyPath)
	if err != nil {
		return err
	}

	clients, err := auditService.Aggregate(cmd.Context(), engine, req.Sheets, opts.workers)
	if err != nil {
		return fmt.Errorf("failed to audit timesheets: %w", err)
	}

	printAudit(cmd.OutOrStdout(), clients)

	if opts.pdfPath == "" {
		return nil
	}
	if err := writeReport(cmd, opts.pdfPath, req.Title, clients); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", opts.pdfPath)
	return nil
}

func readSheets(stdin io.Reader, input string) (audit.CreateAuditRequest, error) {
	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return audit.CreateAuditRequest{}, fmt.Errorf("failed to read sheets: %w", err)
	}

	var req audit.CreateAuditRequest
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &req.Sheets)
	} else {
		err = json.Unmarshal(trimmed, &req)
	}
	if err != nil {
		return audit.CreateAuditRequest{}, fmt.Errorf("failed to decode sheets: %w", err)
	}

	return req, nil
}

func newEngine(vocabularyPath string) (*auditService.Engine, error) {
	vocabulary, err := config.LoadVocabulary(vocabularyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	cfg := auditService.DefaultEngineConfig()
	cfg.Vocabulary = vocabulary
	return auditService.NewEngine(cfg), nil
}

func printAudit(w io.Writer, clients []audit.ClientAudit) {
	for _, client := range clients {
		name := client.Client
		if name == "" {
			name = "(no client)"
		}
		_, _ = fmt.Fprintln(w, Primary(name))

		for _, employee := range client.Employees {
			anomalies := 0
			for _, n := range employee.Summary.AnomaliesByCode {
				anomalies += n
			}

			count := Success(fmt.Sprintf("%d anomalies", anomalies))
			if anomalies > 0 {
				count = Error(fmt.Sprintf("%d anomalies", anomalies))
			}

			_, _ = fmt.Fprintf(w, "  %s  %s  %s\n",
				employee.Header.Name,
				Silent(fmt.Sprintf("%d days, %s%% flagged", employee.Summary.DaysAudited, employee.Summary.AnomalyRate.StringFixed(2))),
				count,
			)
		}
	}

	employees, days, anomalies := auditService.Totals(clients)
	_, _ = fmt.Fprintf(w, "%d employees, %d days, %d anomalies\n", employees, days, anomalies)
}

func writeReport(cmd *cobra.Command, path, title string, clients []audit.ClientAudit) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve report path: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(absPath), ".pdf") {
		return fmt.Errorf("report path must end in .pdf: %s", path)
	}

	store, err := storage.NewLocalStorage(filepath.Dir(absPath))
	if err != nil {
		return err
	}
	reportService := report.NewReportService(store)

	pdf, err := reportService.RenderInconsistencyPDF(title, time.Now(), clients)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if _, err := store.Upload(cmd.Context(), bytes.NewReader(pdf), filepath.Base(absPath), "application/pdf"); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
