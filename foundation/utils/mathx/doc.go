// Package mathx provides decimal arithmetic helpers for the calculators.
//
// Package: mathx
// Title: Business Mathematics on Decimals
// Description: Percentage, discount, tax and interest primitives, rounding
//              modes, greatest common divisor and display formatting. Values
//              are github.com/shopspring/decimal decimals; compounding with
//              fractional periods is computed in float64 and converted back.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-09-29
//
// Usage:
//
//	price := mathx.MustParse("80")
//	final := mathx.ApplyDiscount(price, mathx.MustParse("25")) // 60
//	fmt.Println(mathx.USD.Format(final))                       // $60.00
//
//	amount, err := mathx.CompoundAmount(mathx.MustParse("1000"), 5, 12, 10)
package mathx
