package audit

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
)

// Classification is the justification and schedule context of a single day.
type Classification struct {
	FullyExcused     bool
	PartiallyExcused bool
	ShiftedSchedule  bool
	ReducedSchedule  bool
	Weekend          bool

	// Justification is the vocabulary category that excused the day, if any.
	Justification string
}

// Justified reports whether the day carries any justification.
func (c Classification) Justified() bool {
	return c.FullyExcused || c.PartiallyExcused
}

func (c Classification) Category() audit.DayCategory {
	switch {
	case c.FullyExcused:
		return audit.CategoryFullyExcused
	case c.PartiallyExcused:
		return audit.CategoryPartiallyExcused
	case c.Weekend:
		return audit.CategoryWeekend
	default:
		return audit.CategoryOrdinary
	}
}

type Classifier struct {
	vocabulary     audit.Vocabulary
	shiftedMarker  string
	reducedMarker  string
	weekendMarkers []string
}

func NewClassifier(vocabulary audit.Vocabulary, shiftedMarker, reducedMarker string, weekendMarkers []string) *Classifier {
	markers := make([]string, 0, len(weekendMarkers))
	for _, m := range weekendMarkers {
		if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
			markers = append(markers, m)
		}
	}
	return &Classifier{
		vocabulary:     vocabulary.Normalize(),
		shiftedMarker:  strings.ToUpper(strings.TrimSpace(shiftedMarker)),
		reducedMarker:  strings.ToUpper(strings.TrimSpace(reducedMarker)),
		weekendMarkers: markers,
	}
}

// Classify inspects the normalized reason, the schedule code and the date cell.
// Empty inputs leave every flag false.
func (c *Classifier) Classify(rawDate, reason, scheduleCode string) Classification {
	var result Classification

	partial, partialOK := c.vocabulary.MatchPartial(reason)
	result.PartiallyExcused = partialOK
	result.Justification = partial

	if full, ok := c.vocabulary.MatchFull(reason); ok {
		result.FullyExcused = true
		result.Justification = full
	}

	schedule := strings.ToUpper(scheduleCode)
	result.ShiftedSchedule = c.shiftedMarker != "" && strings.Contains(schedule, c.shiftedMarker)
	result.ReducedSchedule = c.reducedMarker != "" && strings.Contains(schedule, c.reducedMarker)

	date := strings.ToUpper(rawDate)
	for _, marker := range c.weekendMarkers {
		if strings.Contains(date, marker) {
			result.Weekend = true
			break
		}
	}

	return result
}
