// Package age decomposes the time between a birth date and a reference
// instant into calendar and absolute units.
package age

import (
	"time"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/timex"
	"github.com/msto63/mRW/internal/calc/zodiac"
)

// NextBirthday describes the upcoming anniversary of the birth date
type NextBirthday struct {
	Date          time.Time `json:"date" yaml:"date"`
	DaysRemaining int       `json:"days_remaining" yaml:"days_remaining"`
	Display       string    `json:"display" yaml:"display"`
}

// Breakdown is the decomposed age for one (birth date, reference) pair
type Breakdown struct {
	BirthDate    time.Time    `json:"birth_date" yaml:"birth_date"`
	Reference    time.Time    `json:"reference" yaml:"reference"`
	Years        int          `json:"years" yaml:"years"`
	Months       int          `json:"months" yaml:"months"`
	Weeks        int          `json:"weeks" yaml:"weeks"`
	Days         int          `json:"days" yaml:"days"`
	Hours        int64        `json:"hours" yaml:"hours"`
	Minutes      int64        `json:"minutes" yaml:"minutes"`
	NextBirthday NextBirthday `json:"next_birthday" yaml:"next_birthday"`
	ZodiacSign   string       `json:"zodiac_sign" yaml:"zodiac_sign"`
	BirthWeekday string       `json:"birth_weekday" yaml:"birth_weekday"`
}

// TotalMonths returns years*12 + months
func (b *Breakdown) TotalMonths() int {
	return b.Years*12 + b.Months
}

// Decompose computes the age breakdown. birthDate is reduced to its calendar
// day, interpreted at midnight in the location of reference.
func Decompose(birthDate, reference time.Time) (*Breakdown, error) {
	loc := reference.Location()
	by, bm, bd := birthDate.Date()
	birth := time.Date(by, bm, bd, 0, 0, 0, 0, loc)

	if birth.After(reference) {
		return nil, errors.InvalidDate(errors.ModuleAge, "Decompose",
			"birth date is after the reference date",
			birth.Format(timex.ISO8601Date), reference.Format(time.RFC3339))
	}

	ry, rm, rd := reference.Date()

	years := ry - by
	months := int(rm) - int(bm)
	if months < 0 || (months == 0 && rd < bd) {
		years--
		months += 12
	}
	// Applied independently of the carry above.
	if rd < bd {
		months--
	}

	diff := reference.Sub(birth)
	days := timex.FloorDays(diff)

	next := time.Date(ry, bm, bd, 0, 0, 0, 0, loc)
	if next.Before(reference) {
		next = time.Date(ry+1, bm, bd, 0, 0, 0, 0, loc)
	}

	return &Breakdown{
		BirthDate: birth,
		Reference: reference,
		Years:     years,
		Months:    months,
		Weeks:     days / 7,
		Days:      days,
		Hours:     int64(diff / time.Hour),
		Minutes:   int64(diff / time.Minute),
		NextBirthday: NextBirthday{
			Date:          next,
			DaysRemaining: timex.CeilDays(next.Sub(reference)),
			Display:       timex.FormatLong(next),
		},
		ZodiacSign:   zodiac.Sign(int(bm), bd),
		BirthWeekday: timex.WeekdayName(birth),
	}, nil
}
