// Package tzconv converts a wall clock time between IANA time zones.
package tzconv

import (
	"time"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/timex"
)

// Result is the outcome of Convert
type Result struct {
	From        time.Time `json:"from" yaml:"from"`
	FromZone    string    `json:"from_zone" yaml:"from_zone"`
	To          time.Time `json:"to" yaml:"to"`
	ToZone      string    `json:"to_zone" yaml:"to_zone"`
	OffsetHours float64   `json:"offset_hours" yaml:"offset_hours"`
	FromDisplay string    `json:"from_display" yaml:"from_display"`
	ToDisplay   string    `json:"to_display" yaml:"to_display"`
}

// DayShift returns the calendar day difference between target and source
func (r *Result) DayShift() int {
	return timex.DaysBetween(r.From, r.To)
}

// Convert reads the wall clock of t in fromTZ and expresses the same
// instant in toTZ. OffsetHours is the target offset minus the source offset.
func Convert(t time.Time, fromTZ, toTZ string) (*Result, error) {
	to, err := timex.ConvertTimezone(t.Truncate(time.Second), fromTZ, toTZ)
	if err != nil {
		return nil, errors.InvalidInput(errors.ModuleTZConv, "Convert", fromTZ+" -> "+toTZ, "IANA time zone names")
	}
	fromLoc, err := timex.LoadLocation(fromTZ)
	if err != nil {
		return nil, err
	}

	from := to.In(fromLoc)
	diff := timex.OffsetSeconds(from, to.Location()) - timex.OffsetSeconds(from, fromLoc)

	return &Result{
		From:        from,
		FromZone:    fromLoc.String(),
		To:          to,
		ToZone:      to.Location().String(),
		OffsetHours: float64(diff) / 3600,
		FromDisplay: from.Format(timex.DisplayDateTime),
		ToDisplay:   to.Format(timex.DisplayDateTime),
	}, nil
}
