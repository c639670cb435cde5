package audit

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
)

type Rule string

const (
	RuleAbsence       Rule = "absence"
	RuleOddCount      Rule = "odd_count"
	RuleIncompleteDay Rule = "incomplete_day"
	RuleBreak         Rule = "break_duration"
)

// RuleOutcome separates "the rule ran and found nothing" from "the rule
// could not run on this day".
type RuleOutcome int

const (
	OutcomeInapplicable RuleOutcome = iota
	OutcomeNotTriggered
	OutcomeTriggered
)

func (o RuleOutcome) String() string {
	switch o {
	case OutcomeTriggered:
		return "triggered"
	case OutcomeNotTriggered:
		return "not_triggered"
	default:
		return "inapplicable"
	}
}

type Evaluation struct {
	Rule    Rule
	Outcome RuleOutcome
}

// Detection is the outcome of running every rule over one day.
type Detection struct {
	Reason      string
	Anomalies   []audit.Anomaly
	Evaluations []Evaluation

	// Overridden is set when a full justification discarded detected anomalies.
	Overridden bool
}

// Outcome returns the recorded outcome of rule.
func (d Detection) Outcome(rule Rule) RuleOutcome {
	for _, e := range d.Evaluations {
		if e.Rule == rule {
			return e.Outcome
		}
	}
	return OutcomeInapplicable
}

func (d *Detection) record(rule Rule, outcome RuleOutcome) {
	d.Evaluations = append(d.Evaluations, Evaluation{Rule: rule, Outcome: outcome})
}

func (d *Detection) flag(rule Rule, anomaly audit.Anomaly) {
	d.record(rule, OutcomeTriggered)
	d.Anomalies = append(d.Anomalies, anomaly)
}

const timeOfDayLayout = "15:04"

const (
	labelUnjustifiedAbsence = "UNJUSTIFIED ABSENCE"
	labelOddPunchCount      = "ODD PUNCH COUNT"
	labelIncompleteWorkday  = "INCOMPLETE WORKDAY (2 PUNCHES)"
)

// BreakLabel formats the irregular break anomaly label.
func BreakLabel(elapsedMinutes, requiredMinutes int) string {
	return fmt.Sprintf("IRREGULAR BREAK (%02d:%02d) — required: %dm",
		elapsedMinutes/60, elapsedMinutes%60, requiredMinutes)
}

type detector struct {
	standardBreakMinutes int
	reducedBreakMinutes  int
}

// detect applies the punch rules in order. A full justification is applied
// after collection and wins over everything that was found.
func (r detector) detect(punches []string, reason string, c Classification) Detection {
	d := Detection{
		Reason:    reason,
		Anomalies: []audit.Anomaly{},
	}

	if len(punches) == 0 {
		switch {
		case c.FullyExcused:
			d.record(RuleAbsence, OutcomeNotTriggered)
		case c.ShiftedSchedule:
			if reason == "" {
				d.Reason = audit.ScheduledRestDay
			}
			d.record(RuleAbsence, OutcomeNotTriggered)
		case c.Weekend || c.Justified():
			d.record(RuleAbsence, OutcomeNotTriggered)
		default:
			d.flag(RuleAbsence, audit.Anomaly{Code: audit.AnomalyUnjustifiedAbsence, Label: labelUnjustifiedAbsence})
		}
		d.record(RuleOddCount, OutcomeInapplicable)
		d.record(RuleIncompleteDay, OutcomeInapplicable)
		d.record(RuleBreak, OutcomeInapplicable)
	} else {
		d.record(RuleAbsence, OutcomeInapplicable)

		if len(punches)%2 != 0 && !c.Justified() {
			d.flag(RuleOddCount, audit.Anomaly{Code: audit.AnomalyOddPunchCount, Label: labelOddPunchCount})
		} else {
			d.record(RuleOddCount, OutcomeNotTriggered)
		}

		if len(punches) == 2 && !c.Justified() && !c.Weekend {
			d.flag(RuleIncompleteDay, audit.Anomaly{Code: audit.AnomalyIncompleteWorkday, Label: labelIncompleteWorkday})
		} else {
			d.record(RuleIncompleteDay, OutcomeNotTriggered)
		}

		r.checkBreak(&d, punches, c)
	}

	if c.FullyExcused {
		d.Overridden = len(d.Anomalies) > 0
		d.Anomalies = []audit.Anomaly{}
	}

	return d
}

// checkBreak measures punch[1] to punch[2]. An end earlier than the start is
// taken as the next calendar day. Unparsable times make the rule abstain.
func (r detector) checkBreak(d *Detection, punches []string, c Classification) {
	if len(punches) < 3 {
		d.record(RuleBreak, OutcomeInapplicable)
		return
	}

	start, err := time.Parse(timeOfDayLayout, punches[1])
	if err != nil {
		d.record(RuleBreak, OutcomeInapplicable)
		return
	}
	end, err := time.Parse(timeOfDayLayout, punches[2])
	if err != nil {
		d.record(RuleBreak, OutcomeInapplicable)
		return
	}

	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	elapsed := int(end.Sub(start).Minutes())

	required := r.standardBreakMinutes
	if c.ReducedSchedule {
		required = r.reducedBreakMinutes
	}

	if elapsed < required {
		d.flag(RuleBreak, audit.Anomaly{Code: audit.AnomalyIrregularBreak, Label: BreakLabel(elapsed, required)})
		return
	}
	d.record(RuleBreak, OutcomeNotTriggered)
}
