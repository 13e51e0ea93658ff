// Package timex implements the date helpers of meinRECHENWERK.
//
// Package: timex
// Title: Time Utilities for Date Calculators
// Description: Parsing of the usual date notations, whole-day arithmetic
//              with explicit floor and ceil rounding, long date display and
//              time zone conversion with a location cache.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-30
//
// Day counts derived from durations use FloorDays and CeilDays so that the
// rounding direction is visible at the call site. DaysBetween counts
// calendar days and is not affected by daylight saving transitions.
//
// Usage:
//
//	birth, err := timex.ParseDate("1990-05-17")
//	days := timex.FloorDays(now.Sub(birth))
//	fmt.Println(timex.FormatLong(birth)) // Thursday, May 17, 1990
package timex
