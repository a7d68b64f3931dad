// Package adapters provides the repository implementations for the posts feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"blog_backend/internal/feature/posts/domain"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
)

// postGorm is the GORM implementation of the PostRepository interface.
type postGorm struct {
	db *gorm.DB
}

// Compile-time check that postGorm implements PostRepository.
var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostGorm creates a new postGorm instance with the given gorm.DB connection.
func NewPostGorm(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// Create adds a post to the database.
func (r *postGorm) Create(ctx context.Context, p *entity.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID fetches a post with its author loaded.
func (r *postGorm) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var post entity.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Update persists the full state of an existing post.
func (r *postGorm) Update(ctx context.Context, p *entity.Post) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a post.
func (r *postGorm) Delete(ctx context.Context, p *entity.Post) error {
	return r.db.WithContext(ctx).Delete(p).Error
}

// SlugExists reports whether any post already uses the given slug.
func (r *postGorm) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Post{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns the posts matching the filter plus the total match count
// before pagination. Search spans title, content and the author's email and
// username, which needs a join onto users.
func (r *postGorm) List(ctx context.Context, f usecase.ListFilter) ([]entity.Post, int64, error) {
	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&entity.Post{})
		if f.AuthorID != nil {
			q = q.Where("posts.author_id = ?", *f.AuthorID)
		}
		if f.IsPublished != nil {
			q = q.Where("posts.is_published = ?", *f.IsPublished)
		}
		if f.CreatedAfter != nil {
			q = q.Where("posts.created_at >= ?", *f.CreatedAfter)
		}
		if f.CreatedBefore != nil {
			q = q.Where("posts.created_at <= ?", *f.CreatedBefore)
		}
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			q = q.Joins("JOIN users ON users.id = posts.author_id").
				Where("LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(users.username) LIKE ?",
					pattern, pattern, pattern, pattern)
		}
		return q
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var posts []entity.Post
	err := filtered().
		Order(orderClause(f)).
		Limit(f.Limit).
		Offset(f.Offset).
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

// orderClause builds the ORDER BY for a listing. OrderField is whitelisted
// by the usecase, and id descends as a tiebreak so pages stay stable.
func orderClause(f usecase.ListFilter) string {
	dir := "ASC"
	if f.OrderDesc {
		dir = "DESC"
	}
	return fmt.Sprintf("posts.%s %s, posts.id DESC", f.OrderField, dir)
}
