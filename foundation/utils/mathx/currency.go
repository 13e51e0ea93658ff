// File: currency.go
// Title: Currency Formatting
// Description: Formats decimal amounts for display with a currency symbol,
//              thousands separators and a fixed number of places.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-29
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with currency formatting and operations
// - 2026-09-29 v0.2.0: Reduced to display formatting on shopspring/decimal

package mathx

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency describes how an amount is displayed
type Currency struct {
	Code          string
	Symbol        string
	DecimalPlaces int32
}

// Common currencies
var (
	USD = Currency{Code: "USD", Symbol: "$", DecimalPlaces: 2}
	EUR = Currency{Code: "EUR", Symbol: "€", DecimalPlaces: 2}
	GBP = Currency{Code: "GBP", Symbol: "£", DecimalPlaces: 2}
	JPY = Currency{Code: "JPY", Symbol: "¥", DecimalPlaces: 0}
)

// CurrencyRegistry holds all known currencies by ISO code
var CurrencyRegistry = map[string]Currency{
	"USD": USD,
	"EUR": EUR,
	"GBP": GBP,
	"JPY": JPY,
}

// LookupCurrency returns the currency for an ISO code, falling back to USD
func LookupCurrency(code string) Currency {
	if c, ok := CurrencyRegistry[strings.ToUpper(code)]; ok {
		return c
	}
	return USD
}

// Format renders amount as e.g. "$1,234.50" or "-$3.10"
func (c Currency) Format(amount decimal.Decimal) string {
	out := c.Symbol + FormatNumber(amount.Abs(), c.DecimalPlaces, ",")
	if amount.Round(c.DecimalPlaces).IsNegative() {
		return "-" + out
	}
	return out
}

// FormatNumber renders d with fixed places and a thousands separator
func FormatNumber(d decimal.Decimal, places int32, sep string) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
