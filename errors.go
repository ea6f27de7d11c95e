package threadbundle

import (
	"errors"
	"fmt"
)

// Common errors returned by bundle and worker operations
var (
	// ErrInvalidArgument indicates a bind-time validation failure
	ErrInvalidArgument = errors.New("threadbundle: invalid argument")

	// ErrAlreadyStarted indicates Start was called on a running worker
	ErrAlreadyStarted = errors.New("threadbundle: worker already started")

	// ErrNotStarted indicates Join was called on a worker that never started
	ErrNotStarted = errors.New("threadbundle: worker not started")
)

// invalidArgument wraps ErrInvalidArgument with a description of the
// offending argument
func invalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

// HookError represents a failure raised by a user-supplied lifecycle hook.
// The bundle's bookkeeping for the affected slot is consistent by the time
// a HookError is returned (see Bundle.Start and Bundle.Stop).
type HookError struct {
	// Stage is the lifecycle stage whose hook failed
	Stage Stage
	// Slot is the index of the registration whose hook failed
	Slot int
	// Err is the error returned by the hook
	Err error
}

// Error returns a formatted error message
func (e *HookError) Error() string {
	return fmt.Sprintf("threadbundle %s hook, slot %d: %v", e.Stage.String(), e.Slot, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *HookError) Unwrap() error {
	return e.Err
}

// MultiError aggregates multiple errors from bulk operations
type MultiError struct {
	// Errors contains all accumulated errors
	Errors []error
}

// Error returns a summary of the accumulated errors
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add appends an error to the collection if it's not nil
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Unwrap exposes the accumulated errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Err returns nil if no errors occurred, otherwise returns the MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}
