package audit

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 8

type rowResult struct {
	record audit.DayRecord
	ok     bool
}

// Aggregate classifies every row of every sheet and groups the records by
// client, then by employee. Rows are evaluated concurrently but each result
// lands at its source index, so days keep the order of the input rows.
// Sheets of the same employee are concatenated in input order.
func Aggregate(ctx context.Context, engine *Engine, sheets []audit.Sheet, workers int) ([]audit.ClientAudit, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([][]rowResult, len(sheets))
	for i := range sheets {
		results[i] = make([]rowResult, len(sheets[i].Rows))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sheet := range sheets {
		schedule := sheet.Header.Schedule
		for j, row := range sheet.Rows {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				record, ok := engine.ClassifyDay(row.Date, row.Punches, row.Reason, schedule)
				results[i][j] = rowResult{record: record, ok: ok}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var clients []audit.ClientAudit
	clientIndex := make(map[string]int)
	employeeIndex := make(map[string]map[string]int)

	for i, sheet := range sheets {
		header := sheet.Header
		clientKey := strings.TrimSpace(header.Client)
		employeeKey := strings.TrimSpace(header.Name)

		ci, ok := clientIndex[clientKey]
		if !ok {
			ci = len(clients)
			clientIndex[clientKey] = ci
			employeeIndex[clientKey] = make(map[string]int)
			clients = append(clients, audit.ClientAudit{Client: clientKey})
		}

		ei, ok := employeeIndex[clientKey][employeeKey]
		if !ok {
			ei = len(clients[ci].Employees)
			employeeIndex[clientKey][employeeKey] = ei
			clients[ci].Employees = append(clients[ci].Employees, audit.EmployeeAudit{
				Header: header,
				Days:   []audit.DayRecord{},
			})
		}

		employee := &clients[ci].Employees[ei]
		for _, res := range results[i] {
			if res.ok {
				employee.Days = append(employee.Days, res.record)
			}
		}
	}

	for ci := range clients {
		for ei := range clients[ci].Employees {
			employee := &clients[ci].Employees[ei]
			employee.Summary = Summarize(employee.Days)
		}
	}

	return clients, nil
}

// Summarize counts the anomalous days of an employee. AnomalyRate is the
// percentage of audited days with at least one anomaly.
func Summarize(days []audit.DayRecord) audit.EmployeeSummary {
	summary := audit.EmployeeSummary{
		DaysAudited:     len(days),
		AnomaliesByCode: make(map[audit.AnomalyCode]int),
		AnomalyRate:     decimal.Zero,
	}

	for _, day := range days {
		if !day.HasAnomalies() {
			continue
		}
		summary.DaysWithAnomaly++
		for _, a := range day.Anomalies {
			summary.AnomaliesByCode[a.Code]++
		}
	}

	if summary.DaysAudited > 0 {
		summary.AnomalyRate = decimal.NewFromInt(int64(summary.DaysWithAnomaly)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(summary.DaysAudited))).
			Round(2)
	}
	summary.RequiresAttention = summary.DaysWithAnomaly > 0

	return summary
}

// Totals returns the number of employees, days and anomalies across clients.
func Totals(clients []audit.ClientAudit) (employees, days, anomalies int) {
	for _, c := range clients {
		employees += len(c.Employees)
		for _, e := range c.Employees {
			days += len(e.Days)
			for _, d := range e.Days {
				anomalies += len(d.Anomalies)
			}
		}
	}
	return employees, days, anomalies
}
