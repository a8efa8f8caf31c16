// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across client layers.
var (
	// ErrNoBackendURL indicates the backend base URL is not configured.
	ErrNoBackendURL = errors.New("backend URL not configured")

	// ErrUnauthorized indicates a missing or rejected bearer token; the user must log in again.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested entity does not exist on the backend.
	ErrNotFound = errors.New("not found")

	// ErrNoAttempt indicates an exam operation was attempted without an active user-exam.
	ErrNoAttempt = errors.New("no active exam attempt")
)
