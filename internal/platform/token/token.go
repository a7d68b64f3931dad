// Package token implements the single-use account link tokens used for
// email verification and password reset.
//
// A token is a deterministic, time-windowed function of the user's ID, the
// user's current password hash and a server secret. Nothing is stored: a
// token stays valid until either the window elapses or the password hash
// changes, which re-keys the signature and invalidates every previously
// issued token for that user.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Issuer mints and checks account link tokens.
type Issuer interface {
	// Make returns a token bound to the given user ID and password hash.
	Make(userID uint, passwordHash string) string

	// Check reports whether tok is a currently valid token for the given
	// user ID and password hash.
	Check(userID uint, passwordHash string, tok string) bool
}

// issuer implements the Issuer interface.
type issuer struct {
	secret []byte
	window time.Duration
	now    func() time.Time
}

// NewIssuer creates a token issuer with the provided secret and validity window.
func NewIssuer(secret string, window time.Duration) Issuer {
	return &issuer{
		secret: []byte(secret),
		window: window,
		now:    time.Now,
	}
}

// Make creates a token of the form "<timestamp-base36>-<signature>".
func (i *issuer) Make(userID uint, passwordHash string) string {
	ts := i.now().Unix()
	return fmt.Sprintf("%s-%s", strconv.FormatInt(ts, 36), i.sign(userID, passwordHash, ts))
}

// Check validates the token's signature and timestamp window.
// All failure modes are deliberately indistinguishable to the caller.
func (i *issuer) Check(userID uint, passwordHash string, tok string) bool {
	tsPart, sig, ok := strings.Cut(tok, "-")
	if !ok {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}

	// Recompute the signature for the embedded timestamp; a password change
	// alters passwordHash and therefore the expected signature.
	expected := i.sign(userID, passwordHash, ts)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return false
	}

	age := i.now().Unix() - ts
	return age >= 0 && time.Duration(age)*time.Second <= i.window
}

// sign computes the truncated hex HMAC over the token's binding values.
func (i *issuer) sign(userID uint, passwordHash string, ts int64) string {
	mac := hmac.New(sha256.New, i.secret)
	fmt.Fprintf(mac, "%d:%s:%d", userID, passwordHash, ts)
	return hex.EncodeToString(mac.Sum(nil))[:32]
}

// EncodeUID encodes a user ID for inclusion in a link path segment.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID reverses EncodeUID. It fails on malformed base64 and on anything
// that does not decode to a positive decimal integer.
func DecodeUID(s string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid uid encoding: %w", err)
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid uid value")
	}
	return uint(id), nil
}
