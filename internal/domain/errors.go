package domain

import "errors"

var (
	// ErrInvalidObservation is returned when an observation fails validation
	// (non-positive price, missing name or date). No write is performed.
	ErrInvalidObservation = errors.New("invalid price observation")

	// ErrRecordNotFound is returned when no price record exists for a key.
	ErrRecordNotFound = errors.New("price record not found")

	// ErrStoreNotFound is returned when a store ID is not in the catalog.
	ErrStoreNotFound = errors.New("store not found")

	// ErrDuplicateVariant is returned when a variant name already exists
	// (case-insensitively) under the same base item.
	ErrDuplicateVariant = errors.New("variant already exists for base item")

	// ErrRateLimited is returned when rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)
