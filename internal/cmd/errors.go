package cmd

import (
	"errors"
	"io/fs"

	oerrors "github.com/openimis/fe-config/internal/errors"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrConfigNotFound):
		return ExitNotFound
	case errors.Is(err, oerrors.ErrConfigParse), errors.Is(err, oerrors.ErrMissingVersion):
		return ExitValidationError
	case errors.Is(err, fs.ErrPermission):
		return ExitPermissionDenied
	default:
		return ExitGeneralError
	}
}
