package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator defines the interface for access token generation.
type Generator interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(userID uint, email, username string, isSuperuser bool) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT with identity claims.
// Besides the registered claims it embeds email, username and the
// is_superuser flag so API consumers can render identity without a
// second request.
func (g *generator) GenerateToken(userID uint, email, username string, isSuperuser bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":          userID,
		"exp":          now.Add(g.expiration).Unix(),
		"iat":          now.Unix(),
		"email":        email,
		"username":     username,
		"is_superuser": isSuperuser,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
