package model

import (
	json "github.com/goccy/go-json"
)

// MilestoneKind is the closed set of supported life events.
type MilestoneKind string

const (
	KindMarriage  MilestoneKind = "marriage"
	KindHome      MilestoneKind = "home"
	KindCar       MilestoneKind = "car"
	KindChildren  MilestoneKind = "children"
	KindEducation MilestoneKind = "education"
)

// Work status values for the education milestone.
const (
	WorkNone     = "none"
	WorkPartTime = "part-time"
	WorkFullTime = "full-time"
)

// MilestoneRecord is one user-declared future life event. Kind-specific
// fields live in Properties and are decoded by the cost model's per-kind
// builder.
type MilestoneRecord struct {
	Kind       MilestoneKind   `json:"kind"`
	Title      string          `json:"title"`
	YearsAway  int             `json:"years_away"`
	Properties json.RawMessage `json:"properties"`
}

// DurationUntilHorizon marks a recurring effect with no end date of its
// own; the assembler stretches it to the end of the projection horizon.
const DurationUntilHorizon = 1<<31 - 1

// CashFlowDelta is the time-anchored cash-flow effect of one milestone.
// OneTimeAmount and RecurringAnnual are signed: negative is a cost,
// positive is income or a net-worth gain. When DurationYears is 0 the
// recurring amount must be 0.
type CashFlowDelta struct {
	FirstYearOffset int     `json:"first_year_offset"`
	OneTimeAmount   float64 `json:"one_time_amount"`
	RecurringAnnual float64 `json:"recurring_annual"`
	DurationYears   int     `json:"duration_years"`
}

// ActiveAt reports whether the recurring portion applies in the given
// projection year.
func (d CashFlowDelta) ActiveAt(yearIndex int) bool {
	if yearIndex < d.FirstYearOffset {
		return false
	}
	if d.DurationYears == DurationUntilHorizon {
		return true
	}
	return yearIndex < d.FirstYearOffset+d.DurationYears
}
