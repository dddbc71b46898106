// Package domain holds the error kinds shared by every marketplace service.
//
// Each domain package declares its own sentinel errors wrapping one of these
// kinds, so callers can match either the precise error or its kind.
package domain

import "errors"

var (
	// ErrInvalidInput indicates malformed or missing fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden indicates a role or ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates a missing referenced entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a duplicate or already existing entity.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState indicates an operation not valid for the current status.
	ErrInvalidState = errors.New("invalid state")
)
