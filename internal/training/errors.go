package training

import "fmt"

// Error taxonomy shared by the store and service layers. Handlers match these
// with errors.As to pick a transport status; the message is safe to surface.

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError reports a duplicate unique key, e.g. an employee email
// already in use.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// NotFoundError reports an operation against a nonexistent program, module,
// employee or progress row.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// AssignmentError reports a failed bulk assignment; the transaction was
// rolled back, so no partial module set was written.
type AssignmentError struct {
	Msg string
	Err error
}

func (e *AssignmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AssignmentError) Unwrap() error { return e.Err }

// StoreError wraps an underlying storage failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
