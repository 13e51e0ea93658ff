// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. Bad user input is low
//              severity, infrastructure failures are high.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-28
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-09-28 v0.2.0: Severity mapping for calculator codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates rejected input or a missing record
	SeverityLow Severity = iota

	// SeverityMedium indicates an error with a workaround
	SeverityMedium

	// SeverityHigh indicates a failing dependency such as the journal database
	SeverityHigh

	// SeverityCritical indicates the process cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the severity level for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInvalidConfig, CodeConfigError:
		return SeverityCritical

	case CodeDatabaseError, CodeServiceUnavailable, CodeInternal:
		return SeverityHigh

	case CodeInvalidInput, CodeInvalidDate, CodeDivisionByZero, CodeNotFound,
		CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange,
		CodeRateLimited:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
