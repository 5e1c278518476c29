// Package common defines shared constants and sentinel errors used across
// client and server layers of Task Keeper. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal  = errors.New("internal error")
	ErrTransient   = errors.New("service temporarily unavailable")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrUserExists  = fmt.Errorf("user already exists: %w", ErrConflict)

	// ErrVersionConflict is returned when an update names a stale task version.
	ErrVersionConflict = fmt.Errorf("version conflict: %w", ErrConflict)

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = fmt.Errorf("invalid token: %w", ErrUnauthenticated)
	ErrTokenExpired       = fmt.Errorf("token expired: %w", ErrUnauthenticated)
)

// ValidationError reports malformed or missing input for a single field.
// It matches ErrValidation through errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
