package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database, or when a referenced foreign
// entity (an event's travel or event type) is unknown.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end before start, bad color).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrGone is returned where the caller must distinguish "never existed" from
// "existed but was soft-deleted" — only the comprehensive travel read.
// Handlers should map this to HTTP 410 Gone.
var ErrGone = errors.New("gone")

// ErrAlreadyDeleted is returned by SoftDelete when the row is already
// soft-deleted. Handlers should map this to HTTP 409 Conflict.
var ErrAlreadyDeleted = errors.New("already deleted")

// ErrNotDeleted is returned by Restore when the row is not currently
// soft-deleted. Handlers should map this to HTTP 409 Conflict.
var ErrNotDeleted = errors.New("not deleted")
