package usecase

import (
	"context"

	"blog_backend/internal/feature/accounts/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists or ErrUsernameAlreadyExists when a
	// unique constraint is violated.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address.
	// It returns ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a user matching the specified username.
	// It returns ErrUserNotFound if the user does not exist.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error
}

// SessionRepository abstracts the persistence layer for refresh sessions.
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID (refresh token value).
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// RevokeAllByUserID revokes all sessions for a given user.
	RevokeAllByUserID(ctx context.Context, userID uint) error
}

// JWTGenerator defines the interface for access token generation.
type JWTGenerator interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(userID uint, email, username string, isSuperuser bool) (string, error)
}

// LinkTokenIssuer mints and checks the single-use tokens embedded in
// verification and reset links. Tokens are bound to the user's password
// hash, so a password change invalidates everything issued before it.
type LinkTokenIssuer interface {
	Make(userID uint, passwordHash string) string
	Check(userID uint, passwordHash string, tok string) bool
}

// Mailer sends account mails. Implementations submit to a transport; they
// do not wait for delivery.
type Mailer interface {
	SendVerificationEmail(to, uid, token string) error
	SendPasswordResetEmail(to, uid, token string) error
}
