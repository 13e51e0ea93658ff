// File: decimal.go
// Title: Decimal Helpers
// Description: Parsing, rounding and integer helpers on top of
//              github.com/shopspring/decimal. Monetary results of the finance
//              calculators are decimal values so that cents never drift.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-29
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core decimal operations
// - 2025-07-26 v0.1.1: Enhanced String() method with auto-rounding for financial values
// - 2026-09-29 v0.2.0: Replaced the big.Rat based Decimal with shopspring/decimal

package mathx

import (
	"math"
	"strconv"
	"strings"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/shopspring/decimal"
)

// RoundingMode defines how decimal numbers should be rounded
type RoundingMode int

const (
	// RoundingModeHalfUp rounds 0.5 away from zero (commercial rounding)
	RoundingModeHalfUp RoundingMode = iota

	// RoundingModeHalfEven rounds to the nearest even number (banker's rounding)
	RoundingModeHalfEven

	// RoundingModeUp always rounds away from zero
	RoundingModeUp

	// RoundingModeDown always rounds toward zero
	RoundingModeDown
)

// MoneyPlaces is the number of decimal places used for displayed amounts
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Hundred returns the decimal constant 100
func Hundred() decimal.Decimal {
	return hundred
}

// Parse parses a decimal string, trimming surrounding whitespace
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errors.InvalidInput(errors.ModuleMathx, "Parse", s, "decimal number")
	}
	return d, nil
}

// MustParse parses a decimal string and panics on failure
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromFloat converts a finite float64 into a decimal
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, errors.InvalidInput(errors.ModuleMathx, "FromFloat", f, "finite number")
	}
	return decimal.NewFromFloat(f), nil
}

// Round rounds d to the given number of places using mode
func Round(d decimal.Decimal, places int32, mode RoundingMode) decimal.Decimal {
	switch mode {
	case RoundingModeHalfEven:
		return d.RoundBank(places)
	case RoundingModeUp:
		return d.RoundUp(places)
	case RoundingModeDown:
		return d.RoundDown(places)
	default:
		return d.Round(places)
	}
}

// RoundMoney rounds d half-up to two decimal places
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// RoundFloat rounds a float half away from zero to the given number of places
func RoundFloat(f float64, places int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// DecimalPlaces counts the digits after the decimal point of a numeric
// string as typed, so "0.50" has two places and "3" has none. An exponent
// shifts the count: "1.5e-3" has four places, "1.5e2" none.
func DecimalPlaces(text string) int {
	text = strings.TrimSpace(text)
	exp := 0
	if i := strings.IndexAny(text, "eE"); i >= 0 {
		exp, _ = strconv.Atoi(text[i+1:])
		text = text[:i]
	}
	places := 0
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		places = len(text) - dot - 1
	}
	places -= exp
	if places < 0 {
		return 0
	}
	return places
}

// IsFinite reports whether f is neither NaN nor infinite
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
