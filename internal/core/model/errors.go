package model

import "errors"

// Sentinel errors shared by the core components. All of them are
// local, synchronous and recoverable; callers wrap them with context
// and surface them to the UI.
var (
	// ErrValidation indicates a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an unknown identifier.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates an out-of-range timer configuration.
	ErrInvalidConfig = errors.New("invalid timer config")

	// ErrInvalidRecurrence indicates a recurrence that cannot produce
	// a next occurrence.
	ErrInvalidRecurrence = errors.New("invalid recurrence")

	// ErrInvalidAmount indicates a non-positive minute amount.
	ErrInvalidAmount = errors.New("invalid amount")
)
