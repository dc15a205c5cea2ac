package domain

import "errors"

var (
	// ErrUserNotFound means the identity store has no user with the given
	// ID. This is the "empty" outcome of a lookup, never an infrastructure
	// failure.
	ErrUserNotFound = errors.New("user not found")

	// ErrLookupUnavailable means the backing identity store could not be
	// reached or returned an unexpected error. Callers can distinguish it
	// from ErrUserNotFound to avoid treating an outage as a missing user.
	ErrLookupUnavailable = errors.New("user lookup unavailable")

	// ErrNoCurrentUser means a code path that requires an authenticated
	// user ran without one.
	ErrNoCurrentUser = errors.New("no current user")

	// ErrInvalidCredentials means a login attempt failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTaskNotFound means the referenced task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrDescriptionTooLong means a task description exceeds
	// TaskDescriptionMaxLength.
	ErrDescriptionTooLong = errors.New("task description too long")
)
