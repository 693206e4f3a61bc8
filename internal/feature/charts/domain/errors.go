// Package domain defines domain-level errors for the charts feature.
package domain

import "errors"

// Domain errors for chart record operations.
// Handlers map these to HTTP status codes; anything else is treated as an upstream failure.
var (
	// ErrValidation indicates that a required field is missing or unusable.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDate indicates that a trading date string could not be parsed.
	ErrInvalidDate = errors.New("invalid trading date")

	// ErrNotFound indicates that no chart record matched the given identifier.
	ErrNotFound = errors.New("chart record not found")

	// ErrMalformedRecord indicates that a stored record does not satisfy the record schema.
	ErrMalformedRecord = errors.New("malformed chart record")
)
