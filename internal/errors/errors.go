package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the self-check timed out.
	ExitErrorMismatch = 3   // Indicates a property disagreed with the oracle.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// ConfigError represents invalid flags, environment values or commands.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input value that cannot be represented, such
// as a negative integer or one wider than the fixed limb width.
type ValidationError struct {
	// Field is the name of the input that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// CheckError reports a property that did not hold for some input.
type CheckError struct {
	// Property is the human-readable name of the failed property.
	Property string
	// Counterexample describes the inputs that falsified the property.
	Counterexample string
	// Cause is an optional underlying error.
	Cause error
}

// Error returns a message naming the property and its counterexample.
func (e CheckError) Error() string {
	msg := fmt.Sprintf("property %q failed", e.Property)
	if e.Counterexample != "" {
		msg += " for " + e.Counterexample
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e CheckError) Unwrap() error { return e.Cause }

// TimeoutError represents a run that exceeded its time budget.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was abandoned.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps err with a formatted context message. It returns nil when
// err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit code that reports it.
func ExitCode(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		checkErr      CheckError
		timeoutErr    TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &checkErr):
		return ExitErrorMismatch
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
