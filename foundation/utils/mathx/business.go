// File: business.go
// Title: Business Calculation Functions
// Description: Percentage, discount, tax and interest primitives shared by
//              the finance calculators. Rates are given in percent.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-29
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core business calculations
// - 2026-09-29 v0.2.0: shopspring/decimal, percent based rates, fractional
//                       compounding periods

package mathx

import (
	"math"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/shopspring/decimal"
)

// Percentage returns pct percent of value.
// Example: Percentage(100, 20) returns 20
func Percentage(value, pct decimal.Decimal) decimal.Decimal {
	return value.Mul(pct).Div(hundred)
}

// PercentageOf returns what percentage part is of whole.
// Example: PercentageOf(25, 100) returns 25
func PercentageOf(part, whole decimal.Decimal) (decimal.Decimal, error) {
	if whole.IsZero() {
		return decimal.Zero, errors.DivisionByZero(errors.ModuleMathx, "PercentageOf", "whole")
	}
	return part.Div(whole).Mul(hundred), nil
}

// PercentageChange returns (newValue - oldValue) / oldValue * 100
func PercentageChange(oldValue, newValue decimal.Decimal) (decimal.Decimal, error) {
	if oldValue.IsZero() {
		return decimal.Zero, errors.DivisionByZero(errors.ModuleMathx, "PercentageChange", "old value")
	}
	return newValue.Sub(oldValue).Div(oldValue).Mul(hundred), nil
}

// ApplyDiscount returns the price after a percentage discount
func ApplyDiscount(price, pct decimal.Decimal) decimal.Decimal {
	return price.Sub(Percentage(price, pct))
}

// CalculateTax returns the tax on amount at rate percent
func CalculateTax(amount, rate decimal.Decimal) decimal.Decimal {
	return Percentage(amount, rate)
}

// SimpleInterest returns principal * rate * years / 100
func SimpleInterest(principal, ratePct, years decimal.Decimal) decimal.Decimal {
	return principal.Mul(ratePct).Mul(years).Div(hundred)
}

// CompoundFactor returns (1 + r/n)^(n*t) for r given in percent.
// Fractional exponents are allowed, so the power is taken in float64.
func CompoundFactor(ratePct float64, periodsPerYear int, years float64) (float64, error) {
	if periodsPerYear <= 0 {
		return 0, errors.InvalidInput(errors.ModuleMathx, "CompoundFactor", periodsPerYear, "compounding frequency > 0")
	}
	n := float64(periodsPerYear)
	factor := math.Pow(1+ratePct/100/n, n*years)
	if !IsFinite(factor) {
		return 0, errors.InvalidInput(errors.ModuleMathx, "CompoundFactor", years, "finite compound growth")
	}
	return factor, nil
}

// CompoundAmount returns principal * (1 + r/n)^(n*t)
func CompoundAmount(principal decimal.Decimal, ratePct float64, periodsPerYear int, years float64) (decimal.Decimal, error) {
	factor, err := CompoundFactor(ratePct, periodsPerYear, years)
	if err != nil {
		return decimal.Zero, err
	}
	f, err := FromFloat(factor)
	if err != nil {
		return decimal.Zero, err
	}
	return principal.Mul(f), nil
}
