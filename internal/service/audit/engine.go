package audit

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-auditor/internal/fixtures"
)

const (
	DefaultStandardBreakMinutes = 60
	DefaultReducedBreakMinutes  = 15
)

// EngineConfig configures the day classification engine.
type EngineConfig struct {
	Vocabulary           audit.Vocabulary
	ShiftedMarker        string
	ReducedMarker        string
	WeekendMarkers       []string
	StandardBreakMinutes int
	ReducedBreakMinutes  int
}

// DefaultEngineConfig returns the built-in vocabulary, markers and break minimums.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Vocabulary:           fixtures.GetDefaultVocabulary(),
		ShiftedMarker:        fixtures.ShiftedScheduleMarker,
		ReducedMarker:        fixtures.ReducedScheduleMarker,
		WeekendMarkers:       fixtures.GetDefaultWeekendMarkers(),
		StandardBreakMinutes: DefaultStandardBreakMinutes,
		ReducedBreakMinutes:  DefaultReducedBreakMinutes,
	}
}

// Engine classifies timesheet rows into day records. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	classifier *Classifier
	detector   detector
}

func NewEngine(cfg EngineConfig) *Engine {
	if cfg.StandardBreakMinutes <= 0 {
		cfg.StandardBreakMinutes = DefaultStandardBreakMinutes
	}
	if cfg.ReducedBreakMinutes <= 0 {
		cfg.ReducedBreakMinutes = DefaultReducedBreakMinutes
	}
	return &Engine{
		classifier: NewClassifier(cfg.Vocabulary, cfg.ShiftedMarker, cfg.ReducedMarker, cfg.WeekendMarkers),
		detector: detector{
			standardBreakMinutes: cfg.StandardBreakMinutes,
			reducedBreakMinutes:  cfg.ReducedBreakMinutes,
		},
	}
}

// DayEvaluation carries a built record along with how it was reached.
type DayEvaluation struct {
	Record         audit.DayRecord
	Classification Classification
	Detection      Detection
}

// Evaluate runs the full pipeline on one row. ok is false when the date cell
// is not a day marker, in which case no record exists for the row.
func (e *Engine) Evaluate(rawDate, rawPunches, rawReason, scheduleCode string) (eval DayEvaluation, ok bool) {
	date := strings.TrimSpace(rawDate)
	if !IsDayMarker(date) {
		return DayEvaluation{}, false
	}

	punches := ExtractPunches(rawPunches)
	reason := NormalizeReason(rawReason)
	classification := e.classifier.Classify(date, reason, scheduleCode)
	detection := e.detector.detect(punches, reason, classification)

	return DayEvaluation{
		Record:         buildDayRecord(date, punches, classification, detection),
		Classification: classification,
		Detection:      detection,
	}, true
}

// ClassifyDay returns the day record of a row, or false when the row is rejected.
func (e *Engine) ClassifyDay(rawDate, rawPunches, rawReason, scheduleCode string) (audit.DayRecord, bool) {
	eval, ok := e.Evaluate(rawDate, rawPunches, rawReason, scheduleCode)
	if !ok {
		return audit.DayRecord{}, false
	}
	return eval.Record, true
}

func buildDayRecord(date string, punches []string, c Classification, d Detection) audit.DayRecord {
	anomalies := make([]audit.Anomaly, len(d.Anomalies))
	copy(anomalies, d.Anomalies)

	return audit.DayRecord{
		Date:           date,
		Punches:        punches,
		ResolvedReason: d.Reason,
		Category:       c.Category(),
		Justification:  c.Justification,
		Anomalies:      anomalies,
	}
}
