package audit

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayCategory is the justification bucket a day falls into before punch rules run.
type DayCategory string

const (
	CategoryFullyExcused     DayCategory = "FULLY_EXCUSED"
	CategoryPartiallyExcused DayCategory = "PARTIALLY_EXCUSED"
	CategoryWeekend          DayCategory = "WEEKEND"
	CategoryOrdinary         DayCategory = "ORDINARY"
)

type AnomalyCode string

const (
	AnomalyUnjustifiedAbsence AnomalyCode = "UNJUSTIFIED_ABSENCE"
	AnomalyOddPunchCount      AnomalyCode = "ODD_PUNCH_COUNT"
	AnomalyIncompleteWorkday  AnomalyCode = "INCOMPLETE_WORKDAY"
	AnomalyIrregularBreak     AnomalyCode = "IRREGULAR_BREAK"
)

// Reason written on an empty shifted-schedule day without punches.
const ScheduledRestDay = "SCHEDULED REST DAY"

type Anomaly struct {
	Code  AnomalyCode `json:"code"`
	Label string      `json:"label"`
}

// DayRecord is the normalized result of auditing one timesheet row.
// Punches keep their order of appearance in the source cell.
type DayRecord struct {
	Date           string      `json:"date"`
	Punches        []string    `json:"punches"`
	ResolvedReason string      `json:"resolved_reason"`
	Category       DayCategory `json:"category"`
	Justification  string      `json:"justification,omitempty"`
	Anomalies      []Anomaly   `json:"anomalies"`
}

// HasAnomalies reports whether the day requires attention.
func (d DayRecord) HasAnomalies() bool {
	return len(d.Anomalies) > 0
}

func (d DayRecord) AnomalyLabels() []string {
	labels := make([]string, 0, len(d.Anomalies))
	for _, a := range d.Anomalies {
		labels = append(labels, a.Label)
	}
	return labels
}

// EmployeeHeader holds the header fields located above an employee's timesheet table.
type EmployeeHeader struct {
	Client       string `json:"client"`
	Name         string `json:"name"`
	Registration string `json:"registration"`
	TaxID        string `json:"tax_id"`
	Role         string `json:"role"`
	Schedule     string `json:"schedule"`
	Period       string `json:"period"`
}

// RawRow is one extracted table row: date cell, punches cell, reason cell.
type RawRow struct {
	Date    string `json:"date"`
	Punches string `json:"punches"`
	Reason  string `json:"reason"`
}

// Sheet is one employee section of a source document.
type Sheet struct {
	Header EmployeeHeader `json:"header"`
	Rows   []RawRow       `json:"rows"`
}

type EmployeeSummary struct {
	DaysAudited       int                 `json:"days_audited"`
	DaysWithAnomaly   int                 `json:"days_with_anomaly"`
	AnomaliesByCode   map[AnomalyCode]int `json:"anomalies_by_code"`
	AnomalyRate       decimal.Decimal     `json:"anomaly_rate"`
	RequiresAttention bool                `json:"requires_attention"`
}

type EmployeeAudit struct {
	ID      string          `json:"id,omitempty"`
	Header  EmployeeHeader  `json:"header"`
	Days    []DayRecord     `json:"days"`
	Summary EmployeeSummary `json:"summary"`
}

type ClientAudit struct {
	Client    string          `json:"client"`
	Employees []EmployeeAudit `json:"employees"`
}

type AuditRun struct {
	ID            string
	Title         string
	CreatedBy     string
	EmployeeCount int
	DayCount      int
	AnomalyCount  int
	ReportPath    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AuditEmployeeRow is the persisted form of an EmployeeAudit.
type AuditEmployeeRow struct {
	ID           string
	RunID        string
	Position     int
	Header       EmployeeHeader
	DayCount     int
	AnomalyCount int
}

// AuditDayRow is the persisted form of a DayRecord.
type AuditDayRow struct {
	EmployeeID string
	Position   int
	Record     DayRecord
}
