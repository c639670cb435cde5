package audit

import (
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_GroupsByClientAndEmployee(t *testing.T) {
	sheets := []audit.Sheet{
		{
			Header: audit.EmployeeHeader{Client: "ACME", Name: "JOANA SILVA", Schedule: "PADRAO"},
			Rows: []audit.RawRow{
				{Date: "Data", Punches: "Batidas", Reason: "Motivo"},
				{Date: "05/01 SEG", Punches: "08:00 12:00 13:00 17:00"},
				{Date: "06/01 TER", Punches: "08:00 17:00"},
			},
		},
		{
			Header: audit.EmployeeHeader{Client: "GLOBEX", Name: "CARLOS LIMA", Schedule: "12X36"},
			Rows: []audit.RawRow{
				{Date: "05/01 SEG", Punches: ""},
			},
		},
		{
			Header: audit.EmployeeHeader{Client: "ACME", Name: "JOANA SILVA", Schedule: "PADRAO"},
			Rows: []audit.RawRow{
				{Date: "07/01 QUA", Punches: ""},
				{Date: "Total", Punches: "40:00"},
			},
		},
	}

	clients, err := Aggregate(context.Background(), newTestEngine(), sheets, 4)
	require.NoError(t, err)
	require.Len(t, clients, 2)

	assert.Equal(t, "ACME", clients[0].Client)
	require.Len(t, clients[0].Employees, 1)
	joana := clients[0].Employees[0]
	require.Len(t, joana.Days, 3)
	assert.Equal(t, "05/01 SEG", joana.Days[0].Date)
	assert.Equal(t, "06/01 TER", joana.Days[1].Date)
	assert.Equal(t, "07/01 QUA", joana.Days[2].Date)

	assert.Equal(t, 3, joana.Summary.DaysAudited)
	assert.Equal(t, 2, joana.Summary.DaysWithAnomaly)
	assert.Equal(t, 1, joana.Summary.AnomaliesByCode[audit.AnomalyIncompleteWorkday])
	assert.Equal(t, 1, joana.Summary.AnomaliesByCode[audit.AnomalyUnjustifiedAbsence])
	assert.True(t, joana.Summary.AnomalyRate.Equal(decimal.RequireFromString("66.67")), joana.Summary.AnomalyRate.String())
	assert.True(t, joana.Summary.RequiresAttention)

	assert.Equal(t, "GLOBEX", clients[1].Client)
	carlos := clients[1].Employees[0]
	require.Len(t, carlos.Days, 1)
	assert.Equal(t, audit.ScheduledRestDay, carlos.Days[0].ResolvedReason)
	assert.False(t, carlos.Summary.RequiresAttention)
	assert.True(t, carlos.Summary.AnomalyRate.IsZero())

	employees, days, anomalies := Totals(clients)
	assert.Equal(t, 2, employees)
	assert.Equal(t, 4, days)
	assert.Equal(t, 2, anomalies)
}

func TestAggregate_PreservesRowOrderUnderConcurrency(t *testing.T) {
	rows := make([]audit.RawRow, 0, 300)
	for i := 0; i < 300; i++ {
		rows = append(rows, audit.RawRow{
			Date:    fmt.Sprintf("%02d/%03d", i%100, i),
			Punches: "08:00 12:00 13:00 17:00",
		})
	}
	sheets := []audit.Sheet{{Header: audit.EmployeeHeader{Name: "ANA"}, Rows: rows}}

	clients, err := Aggregate(context.Background(), newTestEngine(), sheets, 16)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	days := clients[0].Employees[0].Days
	require.Len(t, days, 300)
	for i, d := range days {
		assert.Equal(t, rows[i].Date, d.Date)
	}
}

func TestAggregate_EmployeeWithoutDayRows(t *testing.T) {
	sheets := []audit.Sheet{{
		Header: audit.EmployeeHeader{Client: "ACME", Name: "ANA"},
		Rows:   []audit.RawRow{{Date: "Colaborador: ANA"}},
	}}

	clients, err := Aggregate(context.Background(), newTestEngine(), sheets, 0)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.NotNil(t, clients[0].Employees[0].Days)
	assert.Empty(t, clients[0].Employees[0].Days)
	assert.Equal(t, 0, clients[0].Employees[0].Summary.DaysAudited)
}

func TestAggregate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sheets := []audit.Sheet{{
		Header: audit.EmployeeHeader{Name: "ANA"},
		Rows:   []audit.RawRow{{Date: "05/01 SEG"}},
	}}

	_, err := Aggregate(ctx, newTestEngine(), sheets, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.DaysAudited)
	assert.True(t, summary.AnomalyRate.IsZero())
	assert.False(t, summary.RequiresAttention)
}
