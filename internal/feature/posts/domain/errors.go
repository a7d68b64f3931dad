// Package domain defines domain-level errors for the posts feature.
package domain

import "errors"

var (
	// ErrPostNotFound is returned when no post matches the requested slug or id.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotAuthor is returned when a caller tries to modify a post they do not own.
	ErrNotAuthor = errors.New("you are not the author of this post")
)
