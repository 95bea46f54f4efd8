package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between algorithms.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrNegativeBound is the sentinel cause for factorial bounds below zero.
// The factorial function is undefined for negative integers, so any such
// bound is rejected before computation starts.
var ErrNegativeBound = errors.New("factorial undefined for negative numbers")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates a calculation error while preserving the
// original cause. This allows for structured error handling and inspection
// of what went wrong during the factorial computation.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a calculation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewInvalidBoundError creates the ValidationError raised when a factorial
// bound is negative.
//
// Parameters:
//   - n: The offending bound.
//
// Returns:
//   - error: A ValidationError describing the invalid bound.
func NewInvalidBoundError(n int64) error {
	return ValidationError{
		Field:   "n",
		Message: fmt.Sprintf("%v: got %d", ErrNegativeBound, n),
	}
}

// IsInvalidBound reports whether err is the negative-bound validation failure.
func IsInvalidBound(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve) && ve.Field == "n"
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// HandleCalculationError converts a terminal calculation error into a
// user-visible message on out and the matching process exit code.
//
// The mapping is:
//   - context.DeadlineExceeded / TimeoutError -> ExitErrorTimeout
//   - context.Canceled                        -> ExitErrorCanceled
//   - ValidationError / ConfigError           -> ExitErrorConfig
//   - anything else                           -> ExitErrorGeneric
//
// Parameters:
//   - err: The error to report. Must be non-nil.
//   - duration: How long the operation ran before failing.
//   - out: The writer for the user-visible message.
//
// Returns:
//   - int: The process exit code.
func HandleCalculationError(err error, duration time.Duration, out io.Writer) int {
	var timeoutErr TimeoutError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "Error: calculation timed out after %s\n", duration.Round(time.Millisecond))
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "Error: calculation canceled after %s\n", duration.Round(time.Millisecond))
		return ExitErrorCanceled
	}

	var validationErr ValidationError
	var configErr ConfigError
	if errors.As(err, &validationErr) || errors.As(err, &configErr) {
		fmt.Fprintf(out, "Error: %v\n", err)
		return ExitErrorConfig
	}

	fmt.Fprintf(out, "Error: %v\n", err)
	return ExitErrorGeneric
}
