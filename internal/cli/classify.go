package cli

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-auditor/internal/service/report"
	"github.com/spf13/cobra"
)

type classifyOptions struct {
	date           string
	punches        string
	reason         string
	schedule       string
	vocabularyPath string
}

func newClassifyCmd() *cobra.Command {
	opts := classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a single timesheet day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "date cell, e.g. \"05/01 SEG\"")
	cmd.Flags().StringVar(&opts.punches, "punches", "", "punches cell")
	cmd.Flags().StringVar(&opts.reason, "reason", "", "reason cell")
	cmd.Flags().StringVar(&opts.schedule, "schedule", "", "employee schedule code")
	cmd.Flags().StringVar(&opts.vocabularyPath, "vocabulary", "", "YAML file extending the justification vocabulary")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runClassify(cmd *cobra.Command, opts classifyOptions) error {
	req := audit.ClassifyDayRequest{
		Date:     opts.date,
		Punches:  opts.punches,
		Reason:   opts.reason,
		Schedule: opts.schedule,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	engine, err := newEngine(opts.vocabularyPath)
	if err != nil {
		return err
	}

	record, ok := engine.ClassifyDay(req.Date, req.Punches, req.Reason, req.Schedule)
	if !ok {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("rejected: not a day row"))
		return nil
	}

	printDay(cmd.OutOrStdout(), record)
	return nil
}

func printDay(w io.Writer, record audit.DayRecord) {
	_, _ = fmt.Fprintf(w, "date:      %s\n", record.Date)
	_, _ = fmt.Fprintf(w, "punches:   %s\n", report.FormatPunches(record.Punches))
	_, _ = fmt.Fprintf(w, "reason:    %s\n", record.ResolvedReason)
	_, _ = fmt.Fprintf(w, "category:  %s\n", record.Category)

	if !record.HasAnomalies() {
		_, _ = fmt.Fprintf(w, "anomalies: %s\n", Success("none"))
		return
	}
	_, _ = fmt.Fprintf(w, "anomalies: %s\n", Error(report.FormatAnomalies(record)))
}
