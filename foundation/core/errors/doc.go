// Package errors provides the shared error taxonomy of meinRECHENWERK.
//
// Package: errors
// Title: mRW Error Standards
// Description: Constructors for the three calculation failure kinds
//              (invalid input, invalid date, division by zero) plus the
//              validation, range and lookup errors used by the service layer.
//              All constructors record the module and operation in the
//              error details.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-29
//
// Usage:
//
//	if quantity == 0 {
//		return nil, errors.DivisionByZero(errors.ModuleFinance, "UnitPrice", "quantity")
//	}
//
//	if errors.IsDivisionByZero(err) {
//		// render "Quantity must be greater than zero"
//	}
package errors
