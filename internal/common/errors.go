// Package common defines shared constants and sentinel errors used across
// the certledger server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. Field-specific failures wrap ErrorValidation.
	ErrorValidation = errors.New("validation error")

	// Institution reconciliation errors.
	ErrorUserNotFound  = errors.New("user not found")
	ErrorEmailConflict = errors.New("email already registered by another institution")
	ErrorPersistence   = errors.New("persistence error")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
