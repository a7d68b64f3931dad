// Package dto defines the request and response shapes for the posts endpoints.
package dto

import "time"

// CreatePostReq is the request body for creating a post.
// is_published defaults to true when omitted.
type CreatePostReq struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	IsPublished *bool  `json:"is_published"`
}

// UpdatePostReq is the request body for a partial post update.
// Omitted fields are left untouched; the slug and author cannot be changed.
type UpdatePostReq struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

// PostRes is a single post as returned to clients. The author is flattened
// to their email plus username, and rendered_content carries the markdown
// rendered to HTML.
type PostRes struct {
	ID              uint      `json:"id"`
	Author          string    `json:"author"`
	AuthorUsername  string    `json:"author_username"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	RenderedContent string    `json:"rendered_content"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
