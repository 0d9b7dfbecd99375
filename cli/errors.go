package cli

import (
	"errors"
	"fmt"

	"github.com/safedep/presence/core/report"
	"github.com/safedep/presence/core/window"
	"github.com/safedep/presence/storage"
)

// Exit codes.
const (
	ExitSuccess         = 0 // Success
	ExitGeneral         = 1 // General/unknown error
	ExitConfig          = 2 // Invalid YAML, invalid config values
	ExitDatabase        = 3 // Database init fails, corrupt/locked
	ExitUserNotFound    = 4 // User reference does not resolve
	ExitDataUnavailable = 5 // A report could not be computed
	ExitInvalidInput    = 6 // Bad flags, ranges or values
)

// ExitCoder is an interface for errors that carry a custom exit code and message.
type ExitCoder interface {
	ExitCode() int
	Message() string
}

// cliError is a typed error that carries an exit code.
type cliError struct {
	code    int
	message string
	err     error
}

// NewCLIError creates a new CLIError with the given code and message.
func NewCLIError(code int, message string) *cliError {
	return &cliError{
		code:    code,
		message: message,
	}
}

// WrapError creates a new CLIError wrapping an underlying error.
func WrapError(code int, message string, err error) *cliError {
	return &cliError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Error implements the error interface.
func (e *cliError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

// ExitCode returns the exit code for this error.
func (e *cliError) ExitCode() int {
	return e.code
}

// Message returns the formatted message for display.
func (e *cliError) Message() string {
	return fmt.Sprintf("Error: %s\n", e.Error())
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *cliError) Unwrap() error {
	return e.err
}

// ErrConfig creates a configuration error.
func ErrConfig(message string, err error) *cliError {
	return WrapError(ExitConfig, message, err)
}

// ErrDatabase creates a database error.
func ErrDatabase(message string, err error) *cliError {
	return WrapError(ExitDatabase, message, err)
}

// ErrUserNotFound creates a user not found error.
func ErrUserNotFound(ref string) *cliError {
	return NewCLIError(ExitUserNotFound, fmt.Sprintf("user not found: %s", ref))
}

// ErrDataUnavailable creates a report failure error.
func ErrDataUnavailable(message string, err error) *cliError {
	return WrapError(ExitDataUnavailable, message, err)
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string, err error) *cliError {
	return WrapError(ExitInvalidInput, message, err)
}

// reportError maps a report failure to a typed CLI error.
func reportError(ref string, err error) error {
	switch {
	case errors.Is(err, report.ErrUserNotFound):
		return ErrUserNotFound(ref)
	case errors.Is(err, window.ErrInvalidWindow):
		return ErrInvalidInput("invalid range", err)
	default:
		return ErrDataUnavailable("failed to compute report", err)
	}
}

// storeError maps a storage failure to a typed CLI error.
func storeError(message string, err error) error {
	switch {
	case errors.Is(err, storage.ErrConflict):
		return ErrInvalidInput(message, err)
	case errors.Is(err, storage.ErrAmbiguous):
		return ErrInvalidInput(message, err)
	default:
		return ErrDatabase(message, err)
	}
}
