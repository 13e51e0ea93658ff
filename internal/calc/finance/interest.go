// Package finance implements the money calculators: interest, discount,
// sales tax, percentage change, unit price and tip. Amounts are decimals
// rounded to cents; rates are given in percent.
package finance

import (
	"strings"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/shopspring/decimal"
)

// SimpleInterestResult is the outcome of SimpleInterest
type SimpleInterestResult struct {
	Principal decimal.Decimal `json:"principal" yaml:"principal"`
	Rate      decimal.Decimal `json:"rate" yaml:"rate"`
	Years     decimal.Decimal `json:"years" yaml:"years"`
	Interest  decimal.Decimal `json:"interest" yaml:"interest"`
	Total     decimal.Decimal `json:"total" yaml:"total"`
}

// SimpleInterest computes SI = P·R·T/100 and P + SI
func SimpleInterest(principal, ratePct, years decimal.Decimal) (*SimpleInterestResult, error) {
	const op = "SimpleInterest"
	if !principal.IsPositive() {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, principal, "principal > 0")
	}
	if ratePct.IsNegative() {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, ratePct, "rate >= 0")
	}
	if !years.IsPositive() {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, years, "time in years > 0")
	}

	interest := mathx.SimpleInterest(principal, ratePct, years)
	return &SimpleInterestResult{
		Principal: principal,
		Rate:      ratePct,
		Years:     years,
		Interest:  mathx.RoundMoney(interest),
		Total:     mathx.RoundMoney(principal.Add(interest)),
	}, nil
}

// Frequency is a compounding preset
type Frequency struct {
	Name           string `json:"name" yaml:"name"`
	PeriodsPerYear int    `json:"periods_per_year" yaml:"periods_per_year"`
}

var frequencies = []Frequency{
	{"annually", 1},
	{"semi-annually", 2},
	{"quarterly", 4},
	{"monthly", 12},
	{"weekly", 52},
	{"daily", 365},
}

// Frequencies returns the compounding presets in ascending order
func Frequencies() []Frequency {
	out := make([]Frequency, len(frequencies))
	copy(out, frequencies)
	return out
}

// ParseFrequency accepts a preset name or a positive number of periods
func ParseFrequency(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range frequencies {
		if f.Name == s {
			return f.PeriodsPerYear, nil
		}
	}
	d, err := mathx.Parse(s)
	if err != nil || !d.IsInteger() || !d.IsPositive() {
		return 0, errors.InvalidInput(errors.ModuleFinance, "ParseFrequency", s, "preset name or periods per year > 0")
	}
	return int(d.IntPart()), nil
}

// CompoundInterestResult is the outcome of CompoundInterest
type CompoundInterestResult struct {
	Principal      decimal.Decimal `json:"principal" yaml:"principal"`
	Rate           decimal.Decimal `json:"rate" yaml:"rate"`
	PeriodsPerYear int             `json:"periods_per_year" yaml:"periods_per_year"`
	Years          decimal.Decimal `json:"years" yaml:"years"`
	Amount         decimal.Decimal `json:"amount" yaml:"amount"`
	Interest       decimal.Decimal `json:"interest" yaml:"interest"`
}

// CompoundInterest computes A = P·(1 + r/n)^(n·t) with r = rate/100
func CompoundInterest(principal, ratePct decimal.Decimal, periodsPerYear int, years decimal.Decimal) (*CompoundInterestResult, error) {
	const op = "CompoundInterest"
	if !principal.IsPositive() {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, principal, "principal > 0")
	}
	if ratePct.IsNegative() {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, ratePct, "rate >= 0")
	}
	if periodsPerYear <= 0 {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, periodsPerYear, "compounding frequency > 0")
	}
	if !years.IsPositive() {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, years, "time in years > 0")
	}

	amount, err := mathx.CompoundAmount(principal, ratePct.InexactFloat64(), periodsPerYear, years.InexactFloat64())
	if err != nil {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, years, "finite compound growth")
	}
	amount = mathx.RoundMoney(amount)
	return &CompoundInterestResult{
		Principal:      principal,
		Rate:           ratePct,
		PeriodsPerYear: periodsPerYear,
		Years:          years,
		Amount:         amount,
		Interest:       amount.Sub(principal),
	}, nil
}
