// Package common defines shared constants and sentinel errors used across
// docscan components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Storage-level errors (the underlying key-value store failed).
	ErrorStorage = errors.New("storage failure")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Protection errors. ErrLocked is additionally matched by
	// protection.LockedError, which carries the retry-after hint.
	ErrInvalidPin = errors.New("invalid pin")
	ErrLocked     = errors.New("document locked")

	// Classification errors (the external service failed or timed out).
	ErrExternalService = errors.New("classification service failure")
)
