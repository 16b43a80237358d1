package labs

import "errors"

var (
	// ErrInvalidInput rejects a check-in with an empty room number.
	ErrInvalidInput = errors.New("room number is required")

	// ErrAccessDenied rejects a check-in from a blocked professor.
	ErrAccessDenied = errors.New("laboratory access has been revoked")

	// ErrSessionAlreadyActive rejects a duplicate check-in; the existing
	// open session is returned alongside it so the caller can surface it.
	ErrSessionAlreadyActive = errors.New("an active session already exists")

	// ErrAlreadyClosed rejects check-out of a log that is already closed.
	ErrAlreadyClosed = errors.New("session is already closed")

	// ErrNotFound means the referenced log or profile does not exist.
	ErrNotFound = errors.New("not found")
)
