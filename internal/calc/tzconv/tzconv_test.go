package tzconv

import (
	"testing"
	"time"

	"github.com/msto63/mRW/foundation/core/errors"
)

func requireZones(t *testing.T, zones ...string) {
	t.Helper()
	for _, z := range zones {
		if _, err := time.LoadLocation(z); err != nil {
			t.Skipf("time zone database unavailable: %v", err)
		}
	}
}

func TestConvert(t *testing.T) {
	requireZones(t, "America/New_York", "Europe/Berlin", "Asia/Tokyo")

	tests := []struct {
		name     string
		in       time.Time
		from, to string
		wantHour int
		offset   float64
		dayShift int
	}{
		{"winter", time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), "America/New_York", "Europe/Berlin", 15, 6, 0},
		{"summer", time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC), "America/New_York", "Europe/Berlin", 15, 6, 0},
		{"across midnight", time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC), "Europe/Berlin", "Asia/Tokyo", 4, 8, 1},
		{"backwards", time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC), "Asia/Tokyo", "America/New_York", 13, -14, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.in, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if got.To.Hour() != tt.wantHour {
				t.Errorf("To.Hour() = %d, want %d", got.To.Hour(), tt.wantHour)
			}
			if got.OffsetHours != tt.offset {
				t.Errorf("OffsetHours = %v, want %v", got.OffsetHours, tt.offset)
			}
			if got.DayShift() != tt.dayShift {
				t.Errorf("DayShift() = %d, want %d", got.DayShift(), tt.dayShift)
			}
			if !got.From.Equal(got.To) {
				t.Error("From and To must be the same instant")
			}
		})
	}
}

func TestConvertUnknownZone(t *testing.T) {
	_, err := Convert(time.Now(), "Mars/Olympus_Mons", "UTC")
	if !errors.IsInvalidInput(err) {
		t.Errorf("Convert() error = %v, want invalid input", err)
	}
	if !errors.IsModuleError(err, errors.ModuleTZConv) {
		t.Errorf("Convert() error module = %q, want tzconv", errors.ExtractModule(err))
	}
}
