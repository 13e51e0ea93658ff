// File: timex_test.go
// Title: Time Utilities Tests
// Description: Tests for date parsing, day arithmetic, display formatting and
//              time zone conversion.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-30

package timex

import (
	"testing"
	"time"

	"github.com/msto63/mRW/foundation/core/errors"
)

// ===============================
// Parsing Tests
// ===============================

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
		year    int
		month   time.Month
		day     int
	}{
		{"ISO Date", "2023-12-25", false, 2023, 12, 25},
		{"Short Date", "12/25/2023", false, 2023, 12, 25},
		{"Compact Date", "20231225", false, 2023, 12, 25},
		{"European Date", "25.12.2023", false, 2023, 12, 25},
		{"Display Date", "December 25, 2023", false, 2023, 12, 25},
		{"Unpadded ISO", "2024-2-9", false, 2024, 2, 9},
		{"Surrounding spaces", " 2023-12-25 ", false, 2023, 12, 25},
		{"Invalid", "not a date", true, 0, 0, 0},
		{"Impossible day", "2023-02-30", true, 0, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseDate(tc.input)

			if tc.wantErr {
				if !errors.IsInvalidInput(err) {
					t.Errorf("ParseDate(%s) error = %v, want invalid input", tc.input, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseDate(%s) unexpected error: %v", tc.input, err)
			}

			if result.Year() != tc.year || result.Month() != tc.month || result.Day() != tc.day {
				t.Errorf("ParseDate(%s) = %v, want %d-%d-%d", tc.input, result, tc.year, tc.month, tc.day)
			}
			if result.Location() != time.UTC {
				t.Errorf("ParseDate(%s) location = %v, want UTC", tc.input, result.Location())
			}
		})
	}
}

func TestParseDateTimeIn(t *testing.T) {
	loc, err := LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("time zone database unavailable: %v", err)
	}

	got, err := ParseDateTimeIn("2024-03-10 14:30", loc)
	if err != nil {
		t.Fatalf("ParseDateTimeIn() unexpected error: %v", err)
	}
	if got.Hour() != 14 || got.Minute() != 30 || got.Location() != loc {
		t.Errorf("ParseDateTimeIn() = %v, want 14:30 Europe/Berlin", got)
	}

	dateOnly, err := ParseDateTimeIn("2024-03-10", loc)
	if err != nil || dateOnly.Hour() != 0 {
		t.Errorf("ParseDateTimeIn(date only) = %v, %v", dateOnly, err)
	}
}

// ===============================
// Day Arithmetic Tests
// ===============================

func TestFloorAndCeilDays(t *testing.T) {
	testCases := []struct {
		d     time.Duration
		floor int
		ceil  int
	}{
		{0, 0, 0},
		{Day, 1, 1},
		{36 * time.Hour, 1, 2},
		{time.Minute, 0, 1},
		{-time.Minute, -1, 0},
		{-36 * time.Hour, -2, -1},
	}

	for _, tc := range testCases {
		if got := FloorDays(tc.d); got != tc.floor {
			t.Errorf("FloorDays(%v) = %d, want %d", tc.d, got, tc.floor)
		}
		if got := CeilDays(tc.d); got != tc.ceil {
			t.Errorf("CeilDays(%v) = %d, want %d", tc.d, got, tc.ceil)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)

	if got := DaysBetween(start, end); got != 60 {
		t.Errorf("DaysBetween() = %d, want 60 (leap year)", got)
	}
	if got := DaysBetween(end, start); got != -60 {
		t.Errorf("DaysBetween() reversed = %d, want -60", got)
	}
}

func TestAddDays(t *testing.T) {
	ts := time.Date(2024, 5, 17, 15, 42, 0, 0, time.UTC)
	if got := AddDays(ts, 280); !got.Equal(time.Date(2025, 2, 21, 15, 42, 0, 0, time.UTC)) {
		t.Errorf("AddDays(280) = %v, want 2025-02-21 15:42", got)
	}
}

// ===============================
// Formatting Tests
// ===============================

func TestFormatting(t *testing.T) {
	d := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	if got := WeekdayName(d); got != "Thursday" {
		t.Errorf("WeekdayName() = %q, want Thursday", got)
	}
	if got := FormatLong(d); got != "Thursday, May 17, 1990" {
		t.Errorf("FormatLong() = %q", got)
	}
}

// ===============================
// Timezone Tests
// ===============================

func TestConvertTimezone(t *testing.T) {
	utcTime := time.Date(2023, 12, 25, 15, 0, 0, 0, time.UTC)

	result, err := ConvertTimezone(utcTime, "UTC", "America/New_York")
	if err != nil {
		t.Skipf("time zone database unavailable: %v", err)
	}

	// EST is UTC-5, so 15:00 UTC should be 10:00 EST
	if result.Hour() != 10 {
		t.Errorf("ConvertTimezone() hour = %d, want 10", result.Hour())
	}

	_, err = ConvertTimezone(utcTime, "Invalid/Timezone", "UTC")
	if !errors.IsInvalidInput(err) {
		t.Errorf("ConvertTimezone() with invalid timezone error = %v, want invalid input", err)
	}

	_, err = ConvertTimezone(utcTime, "UTC", "")
	if !errors.IsInvalidInput(err) {
		t.Errorf("ConvertTimezone() with empty timezone error = %v, want invalid input", err)
	}
}

func TestConvertTimezoneWallClock(t *testing.T) {
	wall := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	result, err := ConvertTimezone(wall, "Europe/Berlin", "Asia/Tokyo")
	if err != nil {
		t.Skipf("time zone database unavailable: %v", err)
	}

	// 09:00 CEST (UTC+2) is 16:00 JST (UTC+9)
	if result.Hour() != 16 {
		t.Errorf("ConvertTimezone() hour = %d, want 16", result.Hour())
	}

	tokyo, _ := LoadLocation("Asia/Tokyo")
	result, err = ConvertTimezone(time.Date(2024, 7, 1, 9, 0, 0, 0, tokyo), "Europe/Berlin", "UTC")
	if err != nil {
		t.Fatalf("ConvertTimezone() error = %v", err)
	}
	if result.Hour() != 7 {
		t.Errorf("ConvertTimezone() ignores the location of t: hour = %d, want 7", result.Hour())
	}
}

func TestOffsetSeconds(t *testing.T) {
	loc, err := LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("time zone database unavailable: %v", err)
	}
	if got := OffsetSeconds(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), loc); got != 19800 {
		t.Errorf("OffsetSeconds(Asia/Kolkata) = %d, want 19800", got)
	}
}
