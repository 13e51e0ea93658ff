// File: standards.go
// Title: Error Standards for mRW Modules
// Description: Module identifiers and sentinel errors shared by all
//              calculator packages. The sentinels match any error carrying the
//              same code under errors.Is.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-29
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for error standardization
// - 2026-09-29 v0.2.0: Calculator module identifiers and sentinels

package errors

import (
	stderrors "errors"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
)

// Module identifiers for error categorization
const (
	ModuleAge       = "age"
	ModuleZodiac    = "zodiac"
	ModulePetAge    = "petage"
	ModuleBioAge    = "bioage"
	ModulePregnancy = "pregnancy"
	ModuleLifeExp   = "lifeexp"
	ModuleFinance   = "finance"
	ModuleNumbers   = "numbers"
	ModuleStats     = "stats"
	ModuleGrades    = "grades"
	ModuleTZConv    = "tzconv"
	ModuleMathx     = "mathx"
	ModuleTimex     = "timex"
	ModuleService   = "service"
	ModuleStore     = "store"
	ModuleConfig    = "config"
)

// Sentinels for errors.Is checks
var (
	ErrInvalidInput   = mrwerror.New("invalid input").WithCode(mrwerror.CodeInvalidInput)
	ErrInvalidDate    = mrwerror.New("invalid date").WithCode(mrwerror.CodeInvalidDate)
	ErrDivisionByZero = mrwerror.New("division by zero").WithCode(mrwerror.CodeDivisionByZero)
	ErrNotFound       = mrwerror.New("not found").WithCode(mrwerror.CodeNotFound)
	ErrValidation     = mrwerror.New("validation failed").WithCode(mrwerror.CodeValidationFailed)
)

// IsInvalidInput reports whether err is an invalid input error
func IsInvalidInput(err error) bool {
	return stderrors.Is(err, ErrInvalidInput)
}

// IsInvalidDate reports whether err is an invalid date error
func IsInvalidDate(err error) bool {
	return stderrors.Is(err, ErrInvalidDate)
}

// IsDivisionByZero reports whether err is a division by zero error
func IsDivisionByZero(err error) bool {
	return stderrors.Is(err, ErrDivisionByZero)
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// IsCalculationError reports whether err rejects the inputs of a calculation
// as opposed to an infrastructure failure.
func IsCalculationError(err error) bool {
	return mrwerror.GetCode(err).Category() == "calculation" ||
		mrwerror.GetCode(err).Category() == "validation"
}

// IsModuleError checks if an error belongs to a specific module
func IsModuleError(err error, module string) bool {
	return ExtractModule(err) == module
}
