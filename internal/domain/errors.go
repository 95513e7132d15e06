package domain

import "errors"

// Sentinel errors for every rule the service can violate. The transport
// layer maps these to HTTP statuses in one place; nothing below it should
// ever invent its own taxonomy.
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidEmail   = errors.New("invalid email")

	ErrInvalidPageSize   = errors.New("page size must be greater than zero")
	ErrInvalidPageNumber = errors.New("page number must not be negative")

	ErrInvalidDateRange = errors.New("invalid date range")
	ErrNoData           = errors.New("no user data available for analytics")

	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrBatchTooLarge     = errors.New("batch too large")

	// ErrSimulatedFailure models a flaky downstream dependency. It is
	// injected with a configurable probability and is safe to retry.
	ErrSimulatedFailure = errors.New("simulated operation failure")
)
