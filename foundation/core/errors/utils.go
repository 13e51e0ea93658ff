// File: utils.go
// Title: Shared Error Handling Utilities
// Description: Error builder and the standard constructors that every
//              calculator module uses instead of fmt.Errorf or errors.New.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-29
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of shared error utilities
// - 2025-07-26 v0.1.1: Enhanced OutOfRange function with "validation failed:" prefix
// - 2026-09-29 v0.2.0: InvalidDate and DivisionByZero constructors, builder
//                       uses typed codes

package errors

import (
	"fmt"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
)

// ErrorBuilder provides a fluent interface for building standardized errors
type ErrorBuilder struct {
	module    string
	operation string
	message   string
	cause     error
	details   map[string]interface{}
	severity  mrwerror.Severity
	code      mrwerror.Code
}

// NewErrorBuilder creates a new error builder for the specified module
func NewErrorBuilder(module string) *ErrorBuilder {
	return &ErrorBuilder{
		module:   module,
		details:  make(map[string]interface{}),
		severity: mrwerror.SeverityMedium,
		code:     mrwerror.CodeUnknown,
	}
}

// Operation sets the operation name for the error
func (eb *ErrorBuilder) Operation(operation string) *ErrorBuilder {
	eb.operation = operation
	return eb
}

// Message sets the error message
func (eb *ErrorBuilder) Message(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// Messagef sets the error message with formatting
func (eb *ErrorBuilder) Messagef(format string, args ...interface{}) *ErrorBuilder {
	eb.message = fmt.Sprintf(format, args...)
	return eb
}

// Cause sets the underlying cause of the error
func (eb *ErrorBuilder) Cause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Detail adds a detail key-value pair to the error
func (eb *ErrorBuilder) Detail(key string, value interface{}) *ErrorBuilder {
	eb.details[key] = value
	return eb
}

// Severity sets the error severity
func (eb *ErrorBuilder) Severity(severity mrwerror.Severity) *ErrorBuilder {
	eb.severity = severity
	return eb
}

// Code sets the error code
func (eb *ErrorBuilder) Code(code mrwerror.Code) *ErrorBuilder {
	eb.code = code
	return eb
}

// Build creates the final error
func (eb *ErrorBuilder) Build() *mrwerror.Error {
	if eb.message == "" {
		if eb.operation != "" {
			eb.message = fmt.Sprintf("%s.%s failed", eb.module, eb.operation)
		} else {
			eb.message = fmt.Sprintf("%s operation failed", eb.module)
		}
	}

	eb.details["module"] = eb.module
	if eb.operation != "" {
		eb.details["operation"] = eb.operation
	}

	var err *mrwerror.Error
	if eb.cause != nil {
		err = mrwerror.Wrap(eb.cause, eb.message)
	} else {
		err = mrwerror.New(eb.message)
	}

	return err.
		WithCode(eb.code).
		WithOperation(eb.operation).
		WithDetails(eb.details).
		WithSeverity(eb.severity)
}

// InvalidInput creates an invalid input error. expected describes the
// accepted domain of the input.
func InvalidInput(module, operation string, input interface{}, expected string) *mrwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Messagef("invalid input for %s.%s: %v (expected %s)", module, operation, input, expected).
		Code(mrwerror.CodeInvalidInput).
		Detail("input", input).
		Detail("expected", expected).
		Severity(mrwerror.SeverityLow).
		Build()
}

// InvalidDate creates an error for a date that violates an ordering rule
func InvalidDate(module, operation, reason string, dates ...interface{}) *mrwerror.Error {
	b := NewErrorBuilder(module).
		Operation(operation).
		Messagef("invalid date in %s.%s: %s", module, operation, reason).
		Code(mrwerror.CodeInvalidDate).
		Detail("reason", reason).
		Severity(mrwerror.SeverityLow)
	if len(dates) > 0 {
		b.Detail("dates", dates)
	}
	return b.Build()
}

// DivisionByZero creates an error for a zero denominator
func DivisionByZero(module, operation, operand string) *mrwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Messagef("division by zero in %s.%s: %s must not be zero", module, operation, operand).
		Code(mrwerror.CodeDivisionByZero).
		Detail("operand", operand).
		Severity(mrwerror.SeverityLow).
		Build()
}

// OutOfRange creates a standardized out of range error
func OutOfRange(module, operation string, value, min, max interface{}) *mrwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Messagef("validation failed: value %v out of range [%v, %v] in %s.%s", value, min, max, module, operation).
		Code(mrwerror.CodeValueOutOfRange).
		Detail("value", value).
		Detail("min", min).
		Detail("max", max).
		Severity(mrwerror.SeverityLow).
		Build()
}

// ValidationFailed creates a standardized validation error
func ValidationFailed(module, field string, value interface{}, reason string) *mrwerror.Error {
	return NewErrorBuilder(module).
		Operation("validate").
		Messagef("validation failed for field %s: %s", field, reason).
		Code(mrwerror.CodeValidationFailed).
		Detail("field", field).
		Detail("value", value).
		Detail("reason", reason).
		Severity(mrwerror.SeverityLow).
		Build()
}

// NotFound creates a standardized not found error
func NotFound(module, operation string, identifier interface{}) *mrwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Messagef("%v not found", identifier).
		Code(mrwerror.CodeNotFound).
		Detail("identifier", identifier).
		Severity(mrwerror.SeverityLow).
		Build()
}

// OperationFailed creates a standardized operation failure error
func OperationFailed(module, operation string, code mrwerror.Code, cause error) *mrwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Messagef("%s.%s operation failed", module, operation).
		Cause(cause).
		Code(code).
		Severity(mrwerror.SeverityHigh).
		Build()
}

// ExtractDetails extracts all details from a structured error
func ExtractDetails(err error) map[string]interface{} {
	if e, ok := mrwerror.As(err); ok {
		return e.Details()
	}
	return nil
}

// ExtractModule extracts the module name from an error
func ExtractModule(err error) string {
	if module, ok := ExtractDetails(err)["module"].(string); ok {
		return module
	}
	return ""
}

// ExtractOperation extracts the operation name from an error
func ExtractOperation(err error) string {
	if operation, ok := ExtractDetails(err)["operation"].(string); ok {
		return operation
	}
	return ""
}
