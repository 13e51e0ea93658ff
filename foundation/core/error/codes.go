// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across meinRECHENWERK. Codes
//              classify a failure independent of its message and drive the
//              HTTP status mapping of the calculator API.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-28
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-09-28 v0.2.0: Calculator taxonomy (invalid date, division by zero)

package error

import "net/http"

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"
	CodeNotFound Code = "NOT_FOUND"
	CodeTimeout  Code = "TIMEOUT"

	// Calculation input
	CodeInvalidInput   Code = "INVALID_INPUT"
	CodeInvalidDate    Code = "INVALID_DATE"
	CodeDivisionByZero Code = "DIVISION_BY_ZERO"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRequiredField    Code = "REQUIRED_FIELD"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Service
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeRateLimited        Code = "RATE_LIMITED"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeTimeout,
		CodeInvalidInput, CodeInvalidDate, CodeDivisionByZero,
		CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange,
		CodeDatabaseError, CodeServiceUnavailable, CodeRateLimited,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeInvalidInput, CodeInvalidDate, CodeDivisionByZero:
		return "calculation"
	case CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange:
		return "validation"
	case CodeDatabaseError:
		return "database"
	case CodeServiceUnavailable, CodeRateLimited, CodeTimeout:
		return "service"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// HTTPStatus returns the HTTP status code for this error code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidInput, CodeInvalidDate, CodeDivisionByZero,
		CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusRequestTimeout
	case CodeServiceUnavailable, CodeDatabaseError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
