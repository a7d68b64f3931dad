// Package usecase implements the business logic for the accounts feature.
package usecase

import (
	"errors"

	"blog_backend/internal/shared/validation"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyExists is returned when attempting to create a user with a username that already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned on login with a wrong password, an
	// unknown email or an account that has not been activated. Deliberately
	// one error for all three cases.
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")

	// ErrInvalidActivationLink is returned for any verification failure:
	// malformed uid, unknown user or bad token. The caller must not learn which.
	ErrInvalidActivationLink = errors.New("invalid activation link")

	// ErrInvalidResetLink is returned when the reset uid does not resolve to a user.
	ErrInvalidResetLink = errors.New("invalid reset link")

	// ErrExpiredResetLink is returned when the reset uid is fine but the token is not.
	ErrExpiredResetLink = errors.New("invalid or expired reset link")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidRefreshToken is returned when a refresh token is unknown, revoked or expired.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// FieldErrors is a validation failure keyed by field name, see
// the shared validation package for the semantics.
type FieldErrors = validation.FieldErrors
