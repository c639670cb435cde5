package audit

import (
	"testing"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultEngineConfig())
}

func labels(r audit.DayRecord) []string {
	return r.AnomalyLabels()
}

func TestEngine_ClassifyDay_Scenarios(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name       string
		date       string
		punches    string
		reason     string
		schedule   string
		wantLabels []string
		wantReason string
	}{
		{
			name:       "exact sixty minute break is not short",
			date:       "05/01 SEG",
			punches:    "08:00 12:00 13:00 17:00",
			schedule:   "PADRAO",
			wantLabels: []string{},
		},
		{
			name:       "forty minute break on standard schedule",
			date:       "06/01 SEG",
			punches:    "08:00 12:00 12:40 17:00",
			schedule:   "PADRAO",
			wantLabels: []string{"IRREGULAR BREAK (00:40) — required: 60m"},
		},
		{
			name:       "vacation without punches keeps its reason",
			date:       "07/01 TER",
			reason:     "FÉRIAS",
			schedule:   "PADRAO",
			wantLabels: []string{},
			wantReason: "FÉRIAS",
		},
		{
			name:       "shifted schedule off day becomes scheduled rest",
			date:       "08/01 QUA",
			schedule:   "12X36",
			wantLabels: []string{},
			wantReason: audit.ScheduledRestDay,
		},
		{
			name:       "two punches on a weekday",
			date:       "09/01 QUI",
			punches:    "08:00 17:00",
			schedule:   "PADRAO",
			wantLabels: []string{"INCOMPLETE WORKDAY (2 PUNCHES)"},
		},
		{
			name:       "no punches and no reason on a weekday",
			date:       "10/01 SEX",
			schedule:   "PADRAO",
			wantLabels: []string{"UNJUSTIFIED ABSENCE"},
		},
		{
			name:       "no punches on a weekend",
			date:       "11/01 SÁB",
			schedule:   "PADRAO",
			wantLabels: []string{},
		},
		{
			name:       "three punches flag odd count then short break",
			date:       "12/01 SEG",
			punches:    "08:00 12:00 12:30",
			schedule:   "PADRAO",
			wantLabels: []string{"ODD PUNCH COUNT", "IRREGULAR BREAK (00:30) — required: 60m"},
		},
		{
			name:       "reduced schedule accepts a fifteen minute break",
			date:       "13/01 TER",
			punches:    "08:00 10:00 10:15 14:00",
			schedule:   "30H SEMANAIS",
			wantLabels: []string{},
		},
		{
			name:       "reduced schedule flags a ten minute break",
			date:       "14/01 QUA",
			punches:    "08:00 10:00 10:10 14:00",
			schedule:   "30h semanais",
			wantLabels: []string{"IRREGULAR BREAK (00:10) — required: 15m"},
		},
		{
			name:       "punches embedded in noise",
			date:       "15/01 QUI",
			punches:    "E 08:00 | S 12:00 | E 13:05 | S 17:00 (ajustado)",
			schedule:   "PADRAO",
			wantLabels: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, ok := engine.ClassifyDay(tt.date, tt.punches, tt.reason, tt.schedule)
			require.True(t, ok)
			assert.Equal(t, tt.date, record.Date)
			assert.Equal(t, tt.wantLabels, labels(record))
			assert.Equal(t, tt.wantReason, record.ResolvedReason)
		})
	}
}

func TestEngine_ClassifyDay_RejectsNonDayRows(t *testing.T) {
	engine := newTestEngine()

	for _, date := range []string{"CABEÇALHO", "", "   ", "1/01", "Data", "TOTAL 05/01", "a5/01"} {
		t.Run(date, func(t *testing.T) {
			_, ok := engine.ClassifyDay(date, "08:00 12:00 13:00 17:00", "FÉRIAS", "12X36")
			assert.False(t, ok)
		})
	}
}

func TestEngine_ClassifyDay_TrimsDate(t *testing.T) {
	record, ok := newTestEngine().ClassifyDay("  05/01 SEG  ", "08:00 12:00 13:00 17:00", "", "")
	require.True(t, ok)
	assert.Equal(t, "05/01 SEG", record.Date)
}

func TestEngine_FullJustificationDiscardsEverything(t *testing.T) {
	engine := newTestEngine()

	punchSets := []struct {
		punches        string
		wantOverridden bool
	}{
		{"", false},
		{"08:00", false},
		{"08:00 17:00", false},
		{"08:00 12:00 12:05", true},
		{"08:00 12:00 12:05 17:00", true},
		{"08:00 23:50 00:10 17:00 18:00", true},
	}
	for _, reason := range []string{"atestado médico", "FERIADO", "licença maternidade", "Suspensão", "afastamento INSS", "folga"} {
		for _, ps := range punchSets {
			eval, ok := engine.Evaluate("16/01 SEX", ps.punches, reason, "PADRAO")
			require.True(t, ok)
			assert.Empty(t, eval.Record.Anomalies, "reason %q punches %q", reason, ps.punches)
			assert.Equal(t, audit.CategoryFullyExcused, eval.Record.Category)
			assert.Equal(t, ps.wantOverridden, eval.Detection.Overridden, "reason %q punches %q", reason, ps.punches)
		}
	}
}

func TestEngine_PartialJustification(t *testing.T) {
	engine := newTestEngine()

	t.Run("suppresses count rules", func(t *testing.T) {
		record, ok := engine.ClassifyDay("19/01 SEG", "08:00 17:00 18:00", "Esquecimento de marcação", "PADRAO")
		require.True(t, ok)
		assert.NotContains(t, labels(record), "ODD PUNCH COUNT")
		assert.Equal(t, audit.CategoryPartiallyExcused, record.Category)
		assert.Equal(t, "FORGOTTEN_PUNCH", record.Justification)
	})

	t.Run("keeps break rule", func(t *testing.T) {
		record, ok := engine.ClassifyDay("20/01 TER", "08:00 12:00 12:20 17:00", "abono", "PADRAO")
		require.True(t, ok)
		assert.Equal(t, []string{"IRREGULAR BREAK (00:20) — required: 60m"}, labels(record))
	})

	t.Run("no punches is not an absence", func(t *testing.T) {
		record, ok := engine.ClassifyDay("21/01 QUA", "", "ponto abonado", "PADRAO")
		require.True(t, ok)
		assert.Empty(t, record.Anomalies)
	})
}

func TestEngine_OddCountAlwaysFlaggedWhenUnjustified(t *testing.T) {
	engine := newTestEngine()

	for _, punches := range []string{"08:00", "08:00 12:00 13:00", "08:00 12:00 13:00 17:00 18:00"} {
		for _, date := range []string{"22/01 QUI", "24/01 SAB", "25/01 DOM"} {
			record, ok := engine.ClassifyDay(date, punches, "", "PADRAO")
			require.True(t, ok)
			assert.Contains(t, labels(record), "ODD PUNCH COUNT", "date %q punches %q", date, punches)
		}
	}
}

func TestEngine_TwoPunchesOnWeekend(t *testing.T) {
	engine := newTestEngine()

	for _, date := range []string{"24/01 SAB", "24/01 SÁB", "25/01 dom"} {
		record, ok := engine.ClassifyDay(date, "08:00 12:00", "", "PADRAO")
		require.True(t, ok)
		assert.NotContains(t, labels(record), "INCOMPLETE WORKDAY (2 PUNCHES)", date)
		assert.Equal(t, audit.CategoryWeekend, record.Category)
	}
}

func TestEngine_ShiftedScheduleKeepsExistingReason(t *testing.T) {
	record, ok := newTestEngine().ClassifyDay("26/01 SEG", "", "  troca   de turno ", "Escala 12x36")
	require.True(t, ok)
	assert.Equal(t, "TROCA DE TURNO", record.ResolvedReason)
	assert.Empty(t, record.Anomalies)
}

func TestEngine_PunchesPreserveOrder(t *testing.T) {
	record, ok := newTestEngine().ClassifyDay("27/01 TER", "17:00 08:00 08:00 12:00", "", "")
	require.True(t, ok)
	assert.Equal(t, []string{"17:00", "08:00", "08:00", "12:00"}, record.Punches)
}

func TestEngine_CustomVocabulary(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Vocabulary = cfg.Vocabulary.Merge(audit.Vocabulary{
		Full: map[string][]string{"TRAINING": {"TREINAMENTO"}},
	}.Normalize())
	engine := NewEngine(cfg)

	record, ok := engine.ClassifyDay("28/01 QUA", "", "Treinamento externo", "PADRAO")
	require.True(t, ok)
	assert.Empty(t, record.Anomalies)
	assert.Equal(t, "TRAINING", record.Justification)

	record, ok = engine.ClassifyDay("28/01 QUA", "", "FÉRIAS", "PADRAO")
	require.True(t, ok)
	assert.Empty(t, record.Anomalies, "defaults survive the merge")
}

func TestEngine_ConfiguredBreakMinimums(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.StandardBreakMinutes = 30
	engine := NewEngine(cfg)

	record, ok := engine.ClassifyDay("29/01 QUI", "08:00 12:00 12:30 17:00", "", "PADRAO")
	require.True(t, ok)
	assert.Empty(t, record.Anomalies)
}

func TestEngine_RecordIsIndependentOfDetection(t *testing.T) {
	eval, ok := newTestEngine().Evaluate("30/01 SEX", "08:00 17:00", "", "PADRAO")
	require.True(t, ok)
	require.Len(t, eval.Record.Anomalies, 1)

	eval.Detection.Anomalies[0].Label = "mutated"
	assert.Equal(t, "INCOMPLETE WORKDAY (2 PUNCHES)", eval.Record.Anomalies[0].Label)
}
