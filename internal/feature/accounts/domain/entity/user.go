// Package entity defines the domain entities for the accounts feature.
package entity

import "time"

// User represents a registered account.
// It contains authentication credentials and profile metadata.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Username is the user's public handle. Letters, digits, underscore and
	// hyphen only; unique across all users.
	Username string `gorm:"uniqueIndex;size:150;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// FirstName and LastName are optional profile fields.
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`

	// IsActive is false until the user verifies their email address.
	// Inactive users cannot authenticate.
	IsActive bool `gorm:"not null;default:false"`

	// IsSuperuser marks privileged accounts. Embedded as a claim at login.
	IsSuperuser bool `gorm:"not null;default:false"`

	// CreatedAt is the timestamp when the user registered.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
