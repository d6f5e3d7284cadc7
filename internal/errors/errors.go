// Package errors provides a lightweight structured error type
// (BookbinderError) for category-based classification across the book
// assembly pipeline and the CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a bookbinder error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Pipeline errors
	CategoryExtract  ErrorCategory = "extract"
	CategoryBuild    ErrorCategory = "build"
	CategorySplice   ErrorCategory = "splice"
	CategoryRelease  ErrorCategory = "release"
	CategoryScaffold ErrorCategory = "scaffold"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// BookbinderError is a structured error with category, severity, and context.
//
// ExitCode, when non-zero, is propagated verbatim by the CLI adapter. It is
// used to surface the exit code of a failed external demo build.
type BookbinderError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	ExitCode int           `json:"exit_code,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BookbinderError
type ContextFields map[string]any

// Error implements the error interface
func (e *BookbinderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BookbinderError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BookbinderError) WithContext(key string, value any) *BookbinderError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithExitCode pins the process exit code the CLI should use for this error.
func (e *BookbinderError) WithExitCode(code int) *BookbinderError {
	e.ExitCode = code
	return e
}

// New creates a new BookbinderError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BookbinderError {
	return &BookbinderError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BookbinderError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BookbinderError {
	return &BookbinderError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if be, ok := err.(*BookbinderError); ok {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a BookbinderError
func GetCategory(err error) ErrorCategory {
	if be, ok := err.(*BookbinderError); ok {
		return be.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error (invalid CLI usage)
func ValidationError(message string) *BookbinderError {
	return &BookbinderError{
		Category: CategoryValidation,
		Severity: SeverityError,
		Message:  message,
	}
}
