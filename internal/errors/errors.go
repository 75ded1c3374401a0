// Package errors provides sentinel errors and structured error details for openimis-config.
package errors

import (
	"fmt"
	"strings"
)

// DetailError captures structured error information for display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path or source the error relates to (optional).
	Location string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString(e.Type)
	if e.Location != "" {
		b.WriteString(" (")
		b.WriteString(e.Location)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Message)

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates a configuration-not-found error with details.
func NewNotFoundError(message, hint string) error {
	return &DetailError{
		Type:    "configuration not found",
		Message: message,
		Hint:    hint,
		Cause:   ErrConfigNotFound,
	}
}

// NewParseError creates a configuration parse error. The underlying decoder
// error is kept in the chain so callers can still inspect it.
func NewParseError(location string, err error) error {
	return &DetailError{
		Type:     "invalid configuration",
		Message:  err.Error(),
		Location: location,
		Cause:    fmt.Errorf("%w: %w", ErrConfigParse, err),
	}
}

// WrapFS wraps a filesystem error, keeping both ErrFilesystem and the
// original error (e.g. fs.ErrPermission) reachable through errors.Is.
func WrapFS(err error, op, path string) error {
	return fmt.Errorf("%s %s: %w: %w", op, path, ErrFilesystem, err)
}
