package audit

import (
	"regexp"
	"strings"
)

var (
	punchRegex     = regexp.MustCompile(`\d{2}:\d{2}`)
	dayMarkerRegex = regexp.MustCompile(`^\d{2}`)
)

// ExtractPunches returns every "HH:MM" substring of raw in order of appearance.
// Values are not range checked, "99:99" is still a punch.
func ExtractPunches(raw string) []string {
	punches := punchRegex.FindAllString(raw, -1)
	if punches == nil {
		return []string{}
	}
	return punches
}

// IsDayMarker reports whether a date cell belongs to a calendar day row.
// Header and footer rows of the source table do not start with two digits.
func IsDayMarker(rawDate string) bool {
	return dayMarkerRegex.MatchString(strings.TrimSpace(rawDate))
}

// NormalizeReason upper-cases the reason and collapses its whitespace.
func NormalizeReason(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
}
