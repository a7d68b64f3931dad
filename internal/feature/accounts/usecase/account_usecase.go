package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"blog_backend/internal/feature/accounts/domain/entity"
	"blog_backend/internal/platform/token"
)

// accountUsecase implements the account workflow: registration, email
// verification, login/refresh, password reset and profile management.
type accountUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	jwt        JWTGenerator
	linkTokens LinkTokenIssuer
	mailer     Mailer

	refreshTTL time.Duration
}

// NewAccountUsecase creates a new instance of accountUsecase.
func NewAccountUsecase(users UserRepository, sessions SessionRepository, jwt JWTGenerator,
	linkTokens LinkTokenIssuer, mailer Mailer, refreshTTL time.Duration) *accountUsecase {
	return &accountUsecase{
		users:      users,
		sessions:   sessions,
		jwt:        jwt,
		linkTokens: linkTokens,
		mailer:     mailer,
		refreshTTL: refreshTTL,
	}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
}

// Register validates the input, creates an inactive user and mails the
// verification link. The user is not logged in. A mail submission failure is
// logged but does not fail the registration.
func (u *accountUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	err := runChecks([]fieldCheck{
		{"email", func() (string, error) { return u.checkEmailAvailable(ctx, in.Email) }},
		{"username", func() (string, error) { return u.checkUsername(ctx, in.Username) }},
		{"password", func() (string, error) { return checkPasswordStrength(in.Password) }},
		{"password_confirm", func() (string, error) { return checkPasswordsMatch(in.Password, in.PasswordConfirm) }},
	})
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Inactive until the verification link is followed. A concurrent
	// duplicate registration slips past the checks above and surfaces here
	// as a unique-constraint error from the store.
	user := &entity.User{
		Email:    in.Email,
		Username: in.Username,
		Password: string(hashed),
		IsActive: false,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uid := token.EncodeUID(user.ID)
	tok := u.linkTokens.Make(user.ID, user.Password)
	if err := u.mailer.SendVerificationEmail(user.Email, uid, tok); err != nil {
		slog.Error("failed to send verification email", "error", err, "user_id", user.ID)
	}

	return user, nil
}

// VerifyEmail activates the account identified by the encoded uid if the
// token checks out. Every failure collapses into ErrInvalidActivationLink so
// the endpoint cannot be used to enumerate users. Re-activating an already
// active user with a still-valid token succeeds silently.
func (u *accountUsecase) VerifyEmail(ctx context.Context, encodedUID, tok string) error {
	id, err := token.DecodeUID(encodedUID)
	if err != nil {
		return ErrInvalidActivationLink
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return ErrInvalidActivationLink
	}

	if !u.linkTokens.Check(user.ID, user.Password, tok) {
		return ErrInvalidActivationLink
	}

	if user.IsActive {
		return nil
	}

	user.IsActive = true
	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	return nil
}

// Login authenticates the user and returns an access/refresh token pair.
// An unknown email, a wrong password and an inactive account all return
// ErrInvalidCredentials. The inactive check runs before any claim is embedded.
func (u *accountUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (access, refresh string, err error) {
	user, findErr := u.users.FindByEmail(ctx, email)

	// Dummy hash so bcrypt.CompareHashAndPassword always runs, keeping the
	// response time independent of whether the email exists.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if findErr == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if findErr != nil || compareErr != nil || !user.IsActive {
		return "", "", ErrInvalidCredentials
	}

	access, tokenErr := u.jwt.GenerateToken(user.ID, user.Email, user.Username, user.IsSuperuser)
	if tokenErr != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	refresh, err = newRefreshToken()
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	session := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", "", fmt.Errorf("failed to create session: %w", err)
	}

	return access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (u *accountUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}
	if !session.IsValid() {
		return "", ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil || !user.IsActive {
		return "", ErrInvalidRefreshToken
	}

	access, err := u.jwt.GenerateToken(user.ID, user.Email, user.Username, user.IsSuperuser)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return access, nil
}

// RequestPasswordReset mails a reset link to the given address. Unlike the
// verification mail this endpoint does report an unknown email, as a field
// error.
func (u *accountUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return FieldErrors{"email": "No user found with this email address."}
		}
		return err
	}

	uid := token.EncodeUID(user.ID)
	tok := u.linkTokens.Make(user.ID, user.Password)
	if err := u.mailer.SendPasswordResetEmail(user.Email, uid, tok); err != nil {
		slog.Error("failed to send password reset email", "error", err, "user_id", user.ID)
	}

	return nil
}

// ConfirmPasswordReset validates the link pair and sets the new password.
// Setting the password changes the hash the link tokens are bound to, so any
// other outstanding token for this user dies with this call; refresh sessions
// are revoked explicitly.
func (u *accountUsecase) ConfirmPasswordReset(ctx context.Context, encodedUID, tok, password, passwordConfirm string) error {
	id, err := token.DecodeUID(encodedUID)
	if err != nil {
		return ErrInvalidResetLink
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return ErrInvalidResetLink
	}

	if !u.linkTokens.Check(user.ID, user.Password, tok) {
		return ErrExpiredResetLink
	}

	err = runChecks([]fieldCheck{
		{"password", func() (string, error) { return checkPasswordStrength(password) }},
		{"password_confirm", func() (string, error) { return checkPasswordsMatch(password, passwordConfirm) }},
	})
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashed)
	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := u.sessions.RevokeAllByUserID(ctx, user.ID); err != nil {
		slog.Error("failed to revoke sessions after password reset", "error", err, "user_id", user.ID)
	}

	return nil
}

// Profile returns the user's own account record.
func (u *accountUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfileInput carries the mutable profile fields. Nil means "leave
// unchanged"; email, id and the join date are not updatable.
type UpdateProfileInput struct {
	Username  *string
	FirstName *string
	LastName  *string
}

// UpdateProfile applies a partial profile update. A username change is
// revalidated for format and uniqueness.
func (u *accountUsecase) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if err := runChecks([]fieldCheck{
			{"username", func() (string, error) { return u.checkUsername(ctx, *in.Username) }},
		}); err != nil {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// newRefreshToken returns a 64-character hex string from a CSPRNG.
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
