// File: timex.go
// Title: Core Time Utilities
// Description: Date parsing, whole-day arithmetic, display formatting and
//              time zone conversion used by the age, pregnancy and time zone
//              calculators.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-30
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive time utilities
// - 2025-07-26 v0.1.1: Enhanced European date parsing support (DD.MM.YYYY format)
// - 2026-09-30 v0.2.0: Floor/ceil day counts, long date display, offset
//                       helpers; removed business day calendar

package timex

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/msto63/mRW/foundation/core/errors"
)

// Common time formats
const (
	ISO8601Date      = "2006-01-02"
	ISO8601DateTime  = "2006-01-02T15:04:05"
	BusinessDateTime = "2006-01-02 15:04:05"
	BusinessMinute   = "2006-01-02 15:04"
	ShortDate        = "01/02/2006"
	CompactDate      = "20060102"
	EuropeanDate     = "02.01.2006"

	// DisplayDate is the long US form, e.g. "January 2, 2006"
	DisplayDate = "January 2, 2006"

	// LongDate adds the weekday, e.g. "Monday, January 2, 2006"
	LongDate = "Monday, January 2, 2006"

	// DisplayDateTime is used for converted wall clock times
	DisplayDateTime = "Monday, January 2, 2006 3:04 PM MST"
)

// Day is the length of a calendar day without DST changes
const Day = 24 * time.Hour

var (
	timezoneCache = make(map[string]*time.Location)
	timezoneMu    sync.RWMutex
)

// LoadLocation returns a cached time zone location or loads and caches it
func LoadLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return nil, errors.InvalidInput(errors.ModuleTimex, "LoadLocation", tz, "IANA time zone name")
	}

	timezoneMu.RLock()
	if loc, exists := timezoneCache[tz]; exists {
		timezoneMu.RUnlock()
		return loc, nil
	}
	timezoneMu.RUnlock()

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.InvalidInput(errors.ModuleTimex, "LoadLocation", tz, "IANA time zone name")
	}

	timezoneMu.Lock()
	timezoneCache[tz] = loc
	timezoneMu.Unlock()

	return loc, nil
}

// ParseDate parses a date string (without time component) in UTC
func ParseDate(value string) (time.Time, error) {
	return ParseDateIn(value, time.UTC)
}

// ParseDateIn parses a date string as midnight in loc
func ParseDateIn(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)

	formats := []string{
		ISO8601Date,
		ShortDate,
		CompactDate,
		EuropeanDate,
		DisplayDate,
		"2006-1-2",
		"1/2/2006",
		"2.1.2006",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.InvalidInput(errors.ModuleTimex, "ParseDate", value, "date such as 2006-01-02")
}

// ParseDateTimeIn parses a date with optional time of day as wall clock in loc
func ParseDateTimeIn(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)

	formats := []string{
		time.RFC3339,
		ISO8601DateTime,
		BusinessDateTime,
		BusinessMinute,
		"2006-01-02T15:04",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, loc); err == nil {
			return t, nil
		}
	}

	return ParseDateIn(value, loc)
}

// FloorDays returns floor(d / 24h)
func FloorDays(d time.Duration) int {
	return int(math.Floor(float64(d) / float64(Day)))
}

// CeilDays returns ceil(d / 24h)
func CeilDays(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(Day)))
}

// DaysBetween counts calendar days from start to end, ignoring time of day
// and DST shifts. It is negative when end is before start.
func DaysBetween(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s) / Day)
}

// AddDays adds n calendar days to t, keeping the wall clock time
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// WeekdayName returns the full English weekday name of t
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// FormatLong renders t as "Monday, January 2, 2006"
func FormatLong(t time.Time) string {
	return t.Format(LongDate)
}

// ConvertTimezone reads the wall clock of t in fromTZ, whatever location t
// carries, and returns the same instant in toTZ.
func ConvertTimezone(t time.Time, fromTZ, toTZ string) (time.Time, error) {
	fromLoc, err := LoadLocation(fromTZ)
	if err != nil {
		return time.Time{}, err
	}

	toLoc, err := LoadLocation(toTZ)
	if err != nil {
		return time.Time{}, err
	}

	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(),
		t.Second(), t.Nanosecond(), fromLoc)

	return wall.In(toLoc), nil
}

// OffsetSeconds returns the UTC offset of loc at instant t
func OffsetSeconds(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	_, offset := t.In(loc).Zone()
	return offset
}
