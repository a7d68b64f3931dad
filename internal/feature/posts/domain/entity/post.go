// Package entity defines the core domain models for the posts feature.
package entity

import (
	"time"

	accountentity "blog_backend/internal/feature/accounts/domain/entity"
)

// Post represents a blog post authored by a registered user.
// The slug is derived from the title once at creation time and never changes,
// so links to a post survive later title edits.
type Post struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	AuthorID    uint                `gorm:"not null;index" json:"-"`
	Author      accountentity.User  `gorm:"foreignKey:AuthorID" json:"-"`
	Title       string              `gorm:"size:200;not null" json:"title"`
	Slug        string              `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Content     string              `gorm:"type:text;not null" json:"content"`
	IsPublished bool                `gorm:"not null;default:true;index" json:"is_published"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
