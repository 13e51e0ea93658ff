package pregnancy

import (
	"testing"
	"time"

	"github.com/msto63/mRW/foundation/core/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate(t *testing.T) {
	got, err := Calculate(date(2024, 1, 1), 28, date(2024, 4, 1))
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if !got.DueDate.Equal(date(2024, 10, 7)) {
		t.Errorf("DueDate = %v, want 2024-10-07", got.DueDate)
	}
	if !got.ConceptionDate.Equal(date(2024, 1, 15)) {
		t.Errorf("ConceptionDate = %v, want 2024-01-15", got.ConceptionDate)
	}
	if got.GestationalDays != 91 {
		t.Errorf("GestationalDays = %d, want 91", got.GestationalDays)
	}
	if got.GestationalAge != (Span{Weeks: 13, Days: 0}) {
		t.Errorf("GestationalAge = %v, want 13w 0d", got.GestationalAge)
	}
	if got.FetalAge != (Span{Weeks: 11, Days: 0}) {
		t.Errorf("FetalAge = %v, want 11w 0d", got.FetalAge)
	}
	if got.Trimester != 1 || got.TrimesterName != "First Trimester" {
		t.Errorf("Trimester = %d %q, want 1", got.Trimester, got.TrimesterName)
	}
	if got.DaysRemaining != 189 {
		t.Errorf("DaysRemaining = %d, want 189", got.DaysRemaining)
	}
	if got.DueDateDisplay != "Monday, October 7, 2024" {
		t.Errorf("DueDateDisplay = %q", got.DueDateDisplay)
	}
}

func TestCalculateCycleLength(t *testing.T) {
	tests := []struct {
		cycle      int
		conception time.Time
		wantErr    bool
	}{
		{0, date(2024, 1, 15), false},
		{21, date(2024, 1, 8), false},
		{35, date(2024, 1, 22), false},
		{20, time.Time{}, true},
		{36, time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := Calculate(date(2024, 1, 1), tt.cycle, date(2024, 2, 1))
		if tt.wantErr {
			if !errors.IsInvalidInput(err) {
				t.Errorf("Calculate(cycle=%d) error = %v, want invalid input", tt.cycle, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Calculate(cycle=%d) error = %v", tt.cycle, err)
		}
		if !got.ConceptionDate.Equal(tt.conception) {
			t.Errorf("Calculate(cycle=%d).ConceptionDate = %v, want %v", tt.cycle, got.ConceptionDate, tt.conception)
		}
		if !got.DueDate.Equal(date(2024, 10, 7)) {
			t.Errorf("DueDate must not depend on cycle length, got %v", got.DueDate)
		}
	}
}

func TestCalculateEdges(t *testing.T) {
	t.Run("LMP in the future", func(t *testing.T) {
		_, err := Calculate(date(2024, 5, 1), 28, date(2024, 4, 1))
		if !errors.IsInvalidDate(err) {
			t.Errorf("Calculate() error = %v, want invalid date", err)
		}
	})

	t.Run("LMP today", func(t *testing.T) {
		got, err := Calculate(date(2024, 4, 1), 28, time.Date(2024, 4, 1, 15, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("Calculate() error = %v", err)
		}
		if got.GestationalDays != 0 || got.FetalAge.TotalDays() != 0 {
			t.Errorf("GestationalDays = %d, FetalAge = %v", got.GestationalDays, got.FetalAge)
		}
	})

	t.Run("overdue", func(t *testing.T) {
		got, err := Calculate(date(2024, 1, 1), 28, date(2024, 10, 10))
		if err != nil {
			t.Fatalf("Calculate() error = %v", err)
		}
		if got.DaysRemaining != -3 || !got.Overdue() || got.RemainingDisplay() != "Overdue" {
			t.Errorf("DaysRemaining = %d, Overdue = %v", got.DaysRemaining, got.Overdue())
		}
		if got.Trimester != 3 {
			t.Errorf("Trimester = %d, want 3", got.Trimester)
		}
	})

	t.Run("due date at noon", func(t *testing.T) {
		got, err := Calculate(date(2024, 1, 1), 28, time.Date(2024, 10, 7, 12, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("Calculate() error = %v", err)
		}
		if got.DaysRemaining != 0 || got.Overdue() {
			t.Errorf("DaysRemaining = %d, Overdue = %v, want 0 and not overdue", got.DaysRemaining, got.Overdue())
		}
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		got, err := Calculate(date(2024, 1, 1), 28, time.Date(2024, 10, 5, 18, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("Calculate() error = %v", err)
		}
		if got.DaysRemaining != 2 {
			t.Errorf("DaysRemaining = %d, want 2", got.DaysRemaining)
		}
	})
}

func TestTrimester(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 1}, {97, 1}, {98, 2}, {195, 2}, {196, 3}, {300, 3},
	}
	for _, tt := range tests {
		if got, _ := Trimester(tt.days); got != tt.want {
			t.Errorf("Trimester(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}
