package usecase

import (
	"context"
	"time"

	"blog_backend/internal/feature/posts/domain/entity"
)

// ListFilter narrows and orders a post listing. OrderField holds a validated
// column name; callers never pass user input through unchecked.
type ListFilter struct {
	AuthorID      *uint
	IsPublished   *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Search        string
	OrderField    string
	OrderDesc     bool
	Limit         int
	Offset        int
}

// PostRepository defines persistence operations for posts.
// Find and List return posts with the author association populated.
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uint) (*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, post *entity.Post) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, f ListFilter) ([]entity.Post, int64, error)
}
