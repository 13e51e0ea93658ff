package age

import (
	"testing"
	"time"

	"github.com/msto63/mRW/foundation/core/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDecompose(t *testing.T) {
	birth := date(1990, 5, 17)
	ref := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	b, err := Decompose(birth, ref)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	if b.Years != 33 || b.Months != 7 {
		t.Errorf("Years, Months = %d, %d, want 33, 7", b.Years, b.Months)
	}
	if b.Days != 12282 {
		t.Errorf("Days = %d, want 12282", b.Days)
	}
	if b.Weeks != 1754 {
		t.Errorf("Weeks = %d, want 1754", b.Weeks)
	}
	if b.Hours != 294780 {
		t.Errorf("Hours = %d, want 294780", b.Hours)
	}
	if b.Minutes != 17686800 {
		t.Errorf("Minutes = %d, want 17686800", b.Minutes)
	}
	if b.NextBirthday.DaysRemaining != 137 {
		t.Errorf("NextBirthday.DaysRemaining = %d, want 137", b.NextBirthday.DaysRemaining)
	}
	if b.NextBirthday.Display != "Friday, May 17, 2024" {
		t.Errorf("NextBirthday.Display = %q", b.NextBirthday.Display)
	}
	if b.ZodiacSign != "Taurus" {
		t.Errorf("ZodiacSign = %q, want Taurus", b.ZodiacSign)
	}
	if b.BirthWeekday != "Thursday" {
		t.Errorf("BirthWeekday = %q, want Thursday", b.BirthWeekday)
	}
}

func TestDecompose_MonthCarry(t *testing.T) {
	tests := []struct {
		name          string
		birth, ref    time.Time
		years, months int
	}{
		{"exact birthday", date(2000, 5, 17), date(2010, 5, 17), 10, 0},
		{"same month before day", date(2000, 5, 17), date(2010, 5, 10), 9, 11},
		{"earlier month before day", date(2000, 5, 17), date(2010, 4, 10), 9, 10},
		{"earlier month after day", date(2000, 5, 17), date(2010, 4, 30), 9, 11},
		{"later month before day", date(2000, 1, 31), date(2000, 3, 1), 0, 1},
		{"later month after day", date(2000, 1, 15), date(2000, 3, 20), 0, 2},
		{"same day", date(2000, 1, 15), date(2000, 1, 15), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Decompose(tt.birth, tt.ref)
			if err != nil {
				t.Fatalf("Decompose() error = %v", err)
			}
			if b.Years != tt.years || b.Months != tt.months {
				t.Errorf("Decompose() = %dy %dm, want %dy %dm", b.Years, b.Months, tt.years, tt.months)
			}
		})
	}
}

func TestDecompose_BirthAfterReference(t *testing.T) {
	_, err := Decompose(date(2030, 1, 1), date(2024, 1, 1))
	if !errors.IsInvalidDate(err) {
		t.Errorf("Decompose() error = %v, want invalid date", err)
	}

	// The birth day itself is a valid reference, even at a later hour.
	if _, err := Decompose(date(2024, 1, 1), time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Errorf("Decompose() on birth day error = %v", err)
	}
}

func TestDecompose_NextBirthday(t *testing.T) {
	t.Run("birthday at midnight is today", func(t *testing.T) {
		b, _ := Decompose(date(1990, 5, 17), date(2024, 5, 17))
		if b.NextBirthday.DaysRemaining != 0 || b.NextBirthday.Date.Year() != 2024 {
			t.Errorf("NextBirthday = %+v, want today", b.NextBirthday)
		}
	})

	t.Run("later on the birthday rolls to next year", func(t *testing.T) {
		b, _ := Decompose(date(1990, 5, 17), time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC))
		if b.NextBirthday.Date.Year() != 2025 {
			t.Errorf("NextBirthday.Date = %v, want 2025", b.NextBirthday.Date)
		}
	})

	t.Run("leap day in a common year", func(t *testing.T) {
		b, _ := Decompose(date(2000, 2, 29), date(2023, 2, 10))
		if !b.NextBirthday.Date.Equal(date(2023, 3, 1)) {
			t.Errorf("NextBirthday.Date = %v, want 2023-03-01", b.NextBirthday.Date)
		}
		if b.NextBirthday.DaysRemaining != 19 {
			t.Errorf("DaysRemaining = %d, want 19", b.NextBirthday.DaysRemaining)
		}
	})

	t.Run("leap day rolls into a leap year", func(t *testing.T) {
		b, _ := Decompose(date(2000, 2, 29), time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC))
		if b.NextBirthday.Display != "Thursday, February 29, 2024" {
			t.Errorf("NextBirthday.Display = %q", b.NextBirthday.Display)
		}
	})
}

func TestDecompose_TotalMonthsMonotonic(t *testing.T) {
	births := []time.Time{date(1990, 1, 31), date(2000, 2, 29), date(1985, 12, 15), date(2001, 7, 1)}

	for _, birth := range births {
		prev := -1
		for ref := birth; ref.Before(birth.AddDate(3, 0, 0)); ref = ref.AddDate(0, 0, 1) {
			b, err := Decompose(birth, ref)
			if err != nil {
				t.Fatalf("Decompose(%v, %v) error = %v", birth, ref, err)
			}
			if b.TotalMonths() < prev {
				t.Fatalf("TotalMonths decreased at %v: %d < %d", ref, b.TotalMonths(), prev)
			}
			prev = b.TotalMonths()
		}
	}
}

func TestDecompose_Deterministic(t *testing.T) {
	birth := date(1975, 11, 3)
	ref := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)

	a, _ := Decompose(birth, ref)
	b, _ := Decompose(birth, ref)
	if *a != *b {
		t.Error("Decompose() should be deterministic for identical inputs")
	}
}
