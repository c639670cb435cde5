package fixtures

import (
	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
)

// ==========================================
// DEFAULT JUSTIFICATION VOCABULARY
// ==========================================

// Both accented and unaccented spellings are listed because timesheet exports
// are inconsistent about diacritics.

// GetDefaultFullJustifications returns the terms that excuse a whole day
func GetDefaultFullJustifications() map[string][]string {
	return map[string][]string{
		"VACATION":          {"FÉRIAS", "FERIAS", "RECESSO"},
		"MEDICAL":           {"ATESTADO", "MÉDICO", "MEDICO"},
		"HOLIDAY":           {"FERIADO", "FACULTATIVO"},
		"LEAVE_OF_ABSENCE":  {"LICENÇA", "LICENCA", "DISPENSA", "AFASTAMENTO"},
		"SUSPENSION":        {"SUSPENSÃO", "SUSPENSAO"},
		"SOCIAL_SECURITY":   {"INSS", "AUXÍLIO DOENÇA", "AUXILIO DOENCA"},
		"COMPENSATORY_REST": {"FOLGA", "COMPENSAÇÃO", "COMPENSACAO", "DSR"},
	}
}

// GetDefaultPartialJustifications returns the terms that tolerate punch
// irregularities without exempting the day from punches
func GetDefaultPartialJustifications() map[string][]string {
	return map[string][]string{
		"FORGIVEN_PUNCH":  {"ABONO", "PONTO ABONADO", "MARCAÇÃO ABONADA", "MARCACAO ABONADA"},
		"FORGOTTEN_PUNCH": {"ESQUECIMENTO", "DECLARAÇÃO DE PONTO", "DECLARACAO DE PONTO"},
		"PARTIAL_PARDON":  {"ABONO PARCIAL", "PERDÃO PARCIAL", "PERDAO PARCIAL"},
	}
}

// GetDefaultVocabulary returns the built-in justification vocabulary
func GetDefaultVocabulary() audit.Vocabulary {
	return audit.Vocabulary{
		Full:    GetDefaultFullJustifications(),
		Partial: GetDefaultPartialJustifications(),
	}.Normalize()
}

// ==========================================
// DEFAULT SCHEDULE MARKERS
// ==========================================

const (
	// ShiftedScheduleMarker identifies the 12 hours on / 36 hours off rotation
	ShiftedScheduleMarker = "12X36"

	// ReducedScheduleMarker identifies the 30 hour week
	ReducedScheduleMarker = "30H"
)

// GetDefaultWeekendMarkers returns the day-name abbreviations of Saturday and Sunday
func GetDefaultWeekendMarkers() []string {
	return []string{"SAB", "SÁB", "DOM"}
}
