package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConnectorNotFound indicates the referenced connector does not exist.
	ErrConnectorNotFound = errors.New("connector not found")

	// ErrInvalidConfiguration indicates a crawl configuration failed validation.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrWorkflowSignal indicates a launch or stop signal to the external
	// workflow runtime failed. Use errors.Is with this sentinel to classify;
	// the concrete error is a *SignalError carrying the failed operation.
	ErrWorkflowSignal = errors.New("workflow signal failed")
)

// SignalError wraps a failed launch or stop signal to the workflow runtime.
// It matches ErrWorkflowSignal under errors.Is and unwraps to the
// underlying runtime error.
type SignalError struct {
	// Op is the signal that failed: "launch" or "stop".
	Op string

	// ConnectorID identifies the connector whose session was signalled.
	ConnectorID string

	// Err is the underlying runtime failure.
	Err error
}

// Error implements the error interface.
func (e *SignalError) Error() string {
	return fmt.Sprintf("workflow signal failed: %s %s: %v", e.Op, e.ConnectorID, e.Err)
}

// Unwrap returns the underlying runtime failure.
func (e *SignalError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the ErrWorkflowSignal sentinel.
func (e *SignalError) Is(target error) bool {
	return target == ErrWorkflowSignal
}
