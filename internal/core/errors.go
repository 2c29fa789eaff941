// Package core holds the error taxonomy shared by the sreagent packages.
package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatValidation ErrorCategory = "validation" // Invalid configuration or input
	ErrCatExecution  ErrorCategory = "execution"  // External command failed
	ErrCatTimeout    ErrorCategory = "timeout"    // Operation exceeded its deadline
	ErrCatNotFound   ErrorCategory = "not_found"  // Tool, process or file absent
	ErrCatIO         ErrorCategory = "io"         // Filesystem read/write failure
	ErrCatState      ErrorCategory = "state"      // Invalid state machine transition
	ErrCatInternal   ErrorCategory = "internal"   // Unexpected internal error
)

// DomainError represents a structured error from the domain layer.
type DomainError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
	Details  map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds contextual information.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ErrValidation creates a validation error.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatValidation,
		Code:     code,
		Message:  message,
	}
}

// ErrExecution creates an execution error.
func ErrExecution(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatExecution,
		Code:     code,
		Message:  message,
	}
}

// ErrTimeout creates a timeout error.
func ErrTimeout(message string) *DomainError {
	return &DomainError{
		Category: ErrCatTimeout,
		Code:     CodeTimeout,
		Message:  message,
	}
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) *DomainError {
	return &DomainError{
		Category: ErrCatNotFound,
		Code:     CodeNotFound,
		Message:  fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrToolMissing creates a not found error for an external tool absent from PATH.
func ErrToolMissing(tool string) *DomainError {
	return &DomainError{
		Category: ErrCatNotFound,
		Code:     CodeToolMissing,
		Message:  fmt.Sprintf("tool not installed: %s", tool),
	}
}

// ErrIO creates a filesystem error.
func ErrIO(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatIO,
		Code:     code,
		Message:  message,
	}
}

// ErrState creates a state error.
func ErrState(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatState,
		Code:     code,
		Message:  message,
	}
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCategory checks if an error belongs to a category.
func IsCategory(err error, cat ErrorCategory) bool {
	return GetCategory(err) == cat
}

// Predefined error codes
const (
	CodeTimeout     = "TIMEOUT"
	CodeNotFound    = "NOT_FOUND"
	CodeToolMissing = "TOOL_MISSING"

	// Validation error codes
	CodeInvalidConfig = "INVALID_CONFIG"

	// Execution error codes
	CodeCommandFailed  = "COMMAND_FAILED"
	CodeCommandNoStart = "COMMAND_NOT_STARTED"

	// IO error codes
	CodeReportWrite = "REPORT_WRITE_FAILED"
	CodeLogRead     = "LOG_READ_FAILED"

	// State error codes
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeReportPanic       = "REPORT_PANIC"
)
