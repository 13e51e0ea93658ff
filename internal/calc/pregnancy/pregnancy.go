// Package pregnancy derives due date, gestational age and trimester from the
// first day of the last menstrual period.
package pregnancy

import (
	"fmt"
	"time"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/timex"
)

const (
	// GestationDays is Naegele's rule
	GestationDays = 280
	// DefaultCycleLength is used when the caller passes 0
	DefaultCycleLength = 28
	MinCycleLength     = 21
	MaxCycleLength     = 35

	ovulationDay       = 14
	secondTrimesterDay = 98
	thirdTrimesterDay  = 196
)

// Span is a duration expressed as whole weeks plus remaining days
type Span struct {
	Weeks int `json:"weeks" yaml:"weeks"`
	Days  int `json:"days" yaml:"days"`
}

// SpanOf splits a day count into weeks and days
func SpanOf(days int) Span {
	return Span{Weeks: days / 7, Days: days % 7}
}

// TotalDays returns weeks*7 + days
func (s Span) TotalDays() int {
	return s.Weeks*7 + s.Days
}

func (s Span) String() string {
	return fmt.Sprintf("%dw %dd", s.Weeks, s.Days)
}

// Result is the outcome of Calculate
type Result struct {
	LMP               time.Time `json:"lmp" yaml:"lmp"`
	CycleLength       int       `json:"cycle_length" yaml:"cycle_length"`
	DueDate           time.Time `json:"due_date" yaml:"due_date"`
	ConceptionDate    time.Time `json:"conception_date" yaml:"conception_date"`
	GestationalDays   int       `json:"gestational_days" yaml:"gestational_days"`
	GestationalAge    Span      `json:"gestational_age" yaml:"gestational_age"`
	FetalAge          Span      `json:"fetal_age" yaml:"fetal_age"`
	Trimester         int       `json:"trimester" yaml:"trimester"`
	TrimesterName     string    `json:"trimester_name" yaml:"trimester_name"`
	DaysRemaining     int       `json:"days_remaining" yaml:"days_remaining"`
	DueDateDisplay    string    `json:"due_date_display" yaml:"due_date_display"`
	ConceptionDisplay string    `json:"conception_display" yaml:"conception_display"`
}

// Overdue reports whether the due date has passed
func (r *Result) Overdue() bool {
	return r.DaysRemaining < 0
}

// RemainingDisplay renders the remaining days, or "Overdue"
func (r *Result) RemainingDisplay() string {
	if r.Overdue() {
		return "Overdue"
	}
	return fmt.Sprintf("%d days", r.DaysRemaining)
}

// Calculate computes the pregnancy dates. lmp is reduced to its calendar day
// in the location of today. A cycle length of 0 selects the default.
func Calculate(lmp time.Time, cycleLength int, today time.Time) (*Result, error) {
	if cycleLength == 0 {
		cycleLength = DefaultCycleLength
	}
	if cycleLength < MinCycleLength || cycleLength > MaxCycleLength {
		return nil, errors.InvalidInput(errors.ModulePregnancy, "Calculate", cycleLength,
			fmt.Sprintf("cycle length between %d and %d days", MinCycleLength, MaxCycleLength))
	}

	ly, lm, ld := lmp.Date()
	start := time.Date(ly, lm, ld, 0, 0, 0, 0, today.Location())
	if start.After(today) {
		return nil, errors.InvalidDate(errors.ModulePregnancy, "Calculate",
			"last menstrual period is in the future",
			start.Format(timex.ISO8601Date), today.Format(time.RFC3339))
	}

	due := timex.AddDays(start, GestationDays)
	conception := timex.AddDays(start, ovulationDay+(cycleLength-DefaultCycleLength))

	ga := timex.DaysBetween(start, today)
	fetal := ga - ovulationDay
	if fetal < 0 {
		fetal = 0
	}

	trimester, name := Trimester(ga)
	return &Result{
		LMP:               start,
		CycleLength:       cycleLength,
		DueDate:           due,
		ConceptionDate:    conception,
		GestationalDays:   ga,
		GestationalAge:    SpanOf(ga),
		FetalAge:          SpanOf(fetal),
		Trimester:         trimester,
		TrimesterName:     name,
		DaysRemaining:     timex.CeilDays(due.Sub(today)),
		DueDateDisplay:    timex.FormatLong(due),
		ConceptionDisplay: timex.FormatLong(conception),
	}, nil
}

// Trimester maps a gestational age in days to its trimester
func Trimester(gestationalDays int) (int, string) {
	switch {
	case gestationalDays < secondTrimesterDay:
		return 1, "First Trimester"
	case gestationalDays < thirdTrimesterDay:
		return 2, "Second Trimester"
	default:
		return 3, "Third Trimester"
	}
}
