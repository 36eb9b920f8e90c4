package xcmd

import "fmt"

// ValidationError rejects a command before execution.
//
// It carries the command kind, a human-readable reason and optionally the
// field that caused the rejection. Validation errors are data, not faults:
// they flow through Result and are never escalated.
type ValidationError struct {
	// CommandKind is the command type that was rejected.
	CommandKind string `json:"command_kind"`
	// Reason is a human-readable reason for rejection.
	Reason string `json:"reason"`
	// Field is the field that caused the error, if the failure is
	// field-scoped.
	Field string `json:"field,omitempty"`
}

// NewValidationError creates a validation error for a whole command.
func NewValidationError(kind, reason string) *ValidationError {
	return &ValidationError{CommandKind: kind, Reason: reason}
}

// FieldValidationError creates a validation error scoped to one field.
func FieldValidationError(kind, field, reason string) *ValidationError {
	return &ValidationError{CommandKind: kind, Reason: reason, Field: field}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.CommandKind, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.CommandKind, e.Reason)
}

type resultStatus uint8

const (
	statusSuccess resultStatus = iota
	statusFailed
	statusRejected
)

// Result is the outcome of executing a command: exactly one of success
// (with a kind-specific output), failed (with a kind-specific error) or
// rejected (by validation, before execution).
type Result[O any] struct {
	status    resultStatus
	output    O
	err       error
	rejection *ValidationError
}

// Success builds a successful result carrying the handler output.
func Success[O any](output O) Result[O] {
	return Result[O]{status: statusSuccess, output: output}
}

// Failed builds a failed result carrying the execution error.
func Failed[O any](err error) Result[O] {
	return Result[O]{status: statusFailed, err: err}
}

// Rejected builds a result for a command refused by validation.
func Rejected[O any](verr *ValidationError) Result[O] {
	return Result[O]{status: statusRejected, rejection: verr}
}

// IsSuccess reports whether the command succeeded.
func (r Result[O]) IsSuccess() bool { return r.status == statusSuccess }

// IsFailed reports whether execution failed.
func (r Result[O]) IsFailed() bool { return r.status == statusFailed }

// IsRejected reports whether validation rejected the command.
func (r Result[O]) IsRejected() bool { return r.status == statusRejected }

// Output returns the success output, if any.
func (r Result[O]) Output() (O, bool) {
	if r.status != statusSuccess {
		var zero O
		return zero, false
	}
	return r.output, true
}

// Err returns the execution error for failed results, nil otherwise.
func (r Result[O]) Err() error {
	if r.status != statusFailed {
		return nil
	}
	return r.err
}

// Rejection returns the validation error for rejected results, nil
// otherwise.
func (r Result[O]) Rejection() *ValidationError {
	if r.status != statusRejected {
		return nil
	}
	return r.rejection
}
