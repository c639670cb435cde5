package audit

import (
	"testing"

	"github.com/cmlabs-hris/timesheet-auditor/internal/fixtures"
	"github.com/stretchr/testify/assert"
)

func newTestClassifier() *Classifier {
	return NewClassifier(
		fixtures.GetDefaultVocabulary(),
		fixtures.ShiftedScheduleMarker,
		fixtures.ReducedScheduleMarker,
		fixtures.GetDefaultWeekendMarkers(),
	)
}

func TestClassifier_EmptyInputs(t *testing.T) {
	c := newTestClassifier().Classify("", "", "")
	assert.Equal(t, Classification{}, c)
	assert.False(t, c.Justified())
}

func TestClassifier_FullyExcused(t *testing.T) {
	c := newTestClassifier()

	for reason, category := range map[string]string{
		"FÉRIAS COLETIVAS":       "VACATION",
		"FERIAS":                 "VACATION",
		"ATESTADO MEDICO 2 DIAS": "MEDICAL",
		"FERIADO MUNICIPAL":      "HOLIDAY",
		"LICENCA PATERNIDADE":    "LEAVE_OF_ABSENCE",
		"SUSPENSÃO DISCIPLINAR":  "SUSPENSION",
		"AFASTAMENTO INSS":       "LEAVE_OF_ABSENCE",
		"FOLGA COMPENSATÓRIA":    "COMPENSATORY_REST",
	} {
		result := c.Classify("05/01 SEG", reason, "PADRAO")
		assert.True(t, result.FullyExcused, reason)
		assert.True(t, result.Justified(), reason)
		assert.Equal(t, category, result.Justification, reason)
	}
}

func TestClassifier_PartiallyExcused(t *testing.T) {
	c := newTestClassifier()

	result := c.Classify("05/01 SEG", "ESQUECIMENTO", "PADRAO")
	assert.False(t, result.FullyExcused)
	assert.True(t, result.PartiallyExcused)
	assert.True(t, result.Justified())
}

func TestClassifier_BothVocabulariesMatch(t *testing.T) {
	result := newTestClassifier().Classify("05/01 SEG", "ABONO ATESTADO", "PADRAO")

	assert.True(t, result.FullyExcused)
	assert.True(t, result.PartiallyExcused)
	assert.Equal(t, "MEDICAL", result.Justification)
}

func TestClassifier_Schedules(t *testing.T) {
	c := newTestClassifier()

	assert.True(t, c.Classify("05/01 SEG", "", "ESCALA 12x36").ShiftedSchedule)
	assert.False(t, c.Classify("05/01 SEG", "", "12X24").ShiftedSchedule)
	assert.True(t, c.Classify("05/01 SEG", "", "30h semanais").ReducedSchedule)
	assert.False(t, c.Classify("05/01 SEG", "", "44H").ReducedSchedule)
}

func TestClassifier_Weekend(t *testing.T) {
	c := newTestClassifier()

	for _, date := range []string{"10/01 SAB", "10/01 sáb", "11/01 DOM"} {
		assert.True(t, c.Classify(date, "", "").Weekend, date)
	}
	for _, date := range []string{"12/01 SEG", "13/01 TER", "16/01 SEX"} {
		assert.False(t, c.Classify(date, "", "").Weekend, date)
	}
}

func TestClassification_Category(t *testing.T) {
	assert.Equal(t, "FULLY_EXCUSED", string(Classification{FullyExcused: true, Weekend: true}.Category()))
	assert.Equal(t, "PARTIALLY_EXCUSED", string(Classification{PartiallyExcused: true, Weekend: true}.Category()))
	assert.Equal(t, "WEEKEND", string(Classification{Weekend: true}.Category()))
	assert.Equal(t, "ORDINARY", string(Classification{ShiftedSchedule: true}.Category()))
}

func TestClassifier_BlankMarkersNeverMatch(t *testing.T) {
	c := NewClassifier(fixtures.GetDefaultVocabulary(), "", " ", []string{"", "  "})
	result := c.Classify("10/01 SAB", "", "12X36 30H")

	assert.False(t, result.ShiftedSchedule)
	assert.False(t, result.ReducedSchedule)
	assert.False(t, result.Weekend)
}
