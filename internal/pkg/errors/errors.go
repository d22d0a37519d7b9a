package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is a generic sentinel for malformed input shapes.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateSubmission signals a second write for a slot that
	// admits at most one row.
	ErrDuplicateSubmission = errors.New("duplicate submission")
)
