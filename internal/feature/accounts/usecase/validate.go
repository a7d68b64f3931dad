package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	maxUsernameLength = 150
)

// usernamePattern restricts usernames to letters, digits, underscore and hyphen.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// fieldCheck validates one field and returns a message, or "" when the field
// is fine. Checks are composed into an ordered pipeline and all run before
// persistence so the caller receives every field error at once.
type fieldCheck struct {
	field string
	check func() (string, error)
}

// runChecks executes a validation pipeline. Field failures accumulate into
// FieldErrors; an infrastructure error aborts immediately.
func runChecks(checks []fieldCheck) error {
	fieldErrs := FieldErrors{}
	for _, c := range checks {
		msg, err := c.check()
		if err != nil {
			return err
		}
		if msg != "" {
			fieldErrs[c.field] = msg
		}
	}
	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}

// checkEmailAvailable reports whether the email is already registered.
func (u *accountUsecase) checkEmailAvailable(ctx context.Context, email string) (string, error) {
	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "A user with this email already exists.", nil
	case errors.Is(err, ErrUserNotFound):
		return "", nil
	default:
		return "", err
	}
}

// checkUsername validates the username format and availability.
func (u *accountUsecase) checkUsername(ctx context.Context, username string) (string, error) {
	if !usernamePattern.MatchString(username) {
		return "Username can only contain letters, numbers, underscores, and hyphens.", nil
	}
	if len(username) > maxUsernameLength {
		return fmt.Sprintf("Username must not exceed %d characters.", maxUsernameLength), nil
	}

	_, err := u.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return "A user with this username already exists.", nil
	case errors.Is(err, ErrUserNotFound):
		return "", nil
	default:
		return "", err
	}
}

// checkPasswordStrength enforces the password policy: a minimum length and
// at least one non-digit character.
func checkPasswordStrength(password string) (string, error) {
	if len(password) < minPasswordLength {
		return fmt.Sprintf("Password must be at least %d characters long.", minPasswordLength), nil
	}

	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return "Password cannot be entirely numeric.", nil
	}
	return "", nil
}

// checkPasswordsMatch enforces password == password_confirm.
func checkPasswordsMatch(password, confirm string) (string, error) {
	if password != confirm {
		return "Passwords do not match.", nil
	}
	return "", nil
}
