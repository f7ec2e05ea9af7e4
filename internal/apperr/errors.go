package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrUnauthorized is returned when no caller identity is present.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the caller identity is present but a role
// or ownership guard fails.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness violation or a lost assignment race (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrInvalidState indicates a status transition attempted from a status
// that does not permit it.
var ErrInvalidState = errors.New("invalid state")

// ErrInvalidPin is returned to the assigned driver when the supplied
// delivery PIN does not match the stored one.
var ErrInvalidPin = errors.New("invalid pin")
