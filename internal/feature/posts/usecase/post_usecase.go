// Package usecase implements the business logic for the posts feature.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"

	"blog_backend/internal/feature/posts/domain"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/shared/validation"
)

const (
	minTitleLength   = 5
	maxTitleLength   = 200
	minContentLength = 10

	defaultPageSize = 10
	maxPageSize     = 100
)

// orderableFields is the whitelist for the ordering query param.
var orderableFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
}

// CreateInput carries the fields for creating a post.
// IsPublished defaults to true when omitted.
type CreateInput struct {
	Title       string
	Content     string
	IsPublished *bool
}

// UpdateInput carries a partial post update. Nil fields are left untouched.
// The slug and the author can never be changed.
type UpdateInput struct {
	Title       *string
	Content     *string
	IsPublished *bool
}

// ListParams carries the raw listing query. Ordering accepts a field name
// from {created_at, updated_at, title} with an optional "-" prefix for
// descending; anything else falls back to the default "-created_at".
type ListParams struct {
	AuthorID      *uint
	IsPublished   *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Search        string
	Ordering      string
	Page          int
	PageSize      int
}

// PostUsecase provides post CRUD, the publish workflow and listing queries.
type PostUsecase interface {
	Create(ctx context.Context, authorID uint, in CreateInput) (*entity.Post, error)
	Get(ctx context.Context, id uint, callerID uint) (*entity.Post, error)
	Update(ctx context.Context, callerID, id uint, in UpdateInput) (*entity.Post, error)
	Delete(ctx context.Context, callerID, id uint) error
	Publish(ctx context.Context, callerID, id uint) (*entity.Post, error)
	Unpublish(ctx context.Context, callerID, id uint) (*entity.Post, error)
	List(ctx context.Context, p ListParams) ([]entity.Post, int64, error)
	Drafts(ctx context.Context, authorID uint, page, pageSize int) ([]entity.Post, int64, error)
}

type postUsecase struct {
	posts PostRepository
}

var _ PostUsecase = (*postUsecase)(nil)

// NewPostUsecase creates a new PostUsecase instance.
func NewPostUsecase(posts PostRepository) PostUsecase {
	return &postUsecase{posts: posts}
}

// Create validates the input, derives the slug from the title and stores
// the post. The slug is computed here exactly once; nothing ever rewrites it.
func (u *postUsecase) Create(ctx context.Context, authorID uint, in CreateInput) (*entity.Post, error) {
	if err := validatePostFields(&in.Title, &in.Content); err != nil {
		return nil, err
	}

	postSlug, err := u.uniqueSlug(ctx, in.Title)
	if err != nil {
		return nil, fmt.Errorf("derive slug: %w", err)
	}

	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}

	post := &entity.Post{
		AuthorID:    authorID,
		Title:       in.Title,
		Slug:        postSlug,
		Content:     in.Content,
		IsPublished: published,
	}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return u.posts.FindByID(ctx, post.ID)
}

// Get fetches a single post. Drafts are visible only to their author;
// everyone else gets the same not-found error as for a missing id, so the
// existence of a draft never leaks.
func (u *postUsecase) Get(ctx context.Context, id uint, callerID uint) (*entity.Post, error) {
	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished && post.AuthorID != callerID {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// Update applies a partial edit to the caller's own post. Title edits do
// not regenerate the slug.
func (u *postUsecase) Update(ctx context.Context, callerID, id uint, in UpdateInput) (*entity.Post, error) {
	post, err := u.ownedPost(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}

	if err := u.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes the caller's own post.
func (u *postUsecase) Delete(ctx context.Context, callerID, id uint) error {
	post, err := u.ownedPost(ctx, callerID, id)
	if err != nil {
		return err
	}
	if err := u.posts.Delete(ctx, post); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Publish marks the caller's own post as published. Publishing an already
// published post is a no-op, not an error.
func (u *postUsecase) Publish(ctx context.Context, callerID, id uint) (*entity.Post, error) {
	return u.setPublished(ctx, callerID, id, true)
}

// Unpublish reverts the caller's own post to a draft. Idempotent like Publish.
func (u *postUsecase) Unpublish(ctx context.Context, callerID, id uint) (*entity.Post, error) {
	return u.setPublished(ctx, callerID, id, false)
}

func (u *postUsecase) setPublished(ctx context.Context, callerID, id uint, published bool) (*entity.Post, error) {
	post, err := u.ownedPost(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if post.IsPublished == published {
		return post, nil
	}
	post.IsPublished = published
	if err := u.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// List returns published posts matching the query together with the total
// match count. An explicit is_published=false filter therefore yields an
// empty page rather than exposing drafts.
func (u *postUsecase) List(ctx context.Context, p ListParams) ([]entity.Post, int64, error) {
	published := true
	f := ListFilter{
		AuthorID:      p.AuthorID,
		IsPublished:   &published,
		CreatedAfter:  p.CreatedAfter,
		CreatedBefore: p.CreatedBefore,
		Search:        p.Search,
	}
	if p.IsPublished != nil && !*p.IsPublished {
		// Published-only is non-negotiable on the open listing; combined with
		// is_published=false the two filters cannot both hold.
		return []entity.Post{}, 0, nil
	}

	f.OrderField, f.OrderDesc = parseOrdering(p.Ordering)
	f.Limit, f.Offset = paginate(p.Page, p.PageSize)

	return u.posts.List(ctx, f)
}

// Drafts returns the caller's unpublished posts, newest first.
func (u *postUsecase) Drafts(ctx context.Context, authorID uint, page, pageSize int) ([]entity.Post, int64, error) {
	unpublished := false
	f := ListFilter{
		AuthorID:    &authorID,
		IsPublished: &unpublished,
		OrderField:  "created_at",
		OrderDesc:   true,
	}
	f.Limit, f.Offset = paginate(page, pageSize)

	return u.posts.List(ctx, f)
}

// ownedPost loads a post and enforces authorship. A missing post and a
// foreign draft both come back as not-found; a foreign published post is a
// distinct authorization error.
func (u *postUsecase) ownedPost(ctx context.Context, callerID, id uint) (*entity.Post, error) {
	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		if !post.IsPublished {
			return nil, domain.ErrPostNotFound
		}
		return nil, domain.ErrNotAuthor
	}
	return post, nil
}

// uniqueSlug derives a URL slug from the title, suffixing -2, -3, ... until
// it no longer collides with an existing post.
func (u *postUsecase) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "post"
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := u.posts.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// validatePostFields checks title and content bounds. Nil fields are
// skipped so partial updates only validate what they touch. All failures
// are reported together.
func validatePostFields(title, content *string) error {
	errs := validation.FieldErrors{}

	if title != nil {
		switch n := len([]rune(*title)); {
		case n < minTitleLength:
			errs["title"] = fmt.Sprintf("Title must be at least %d characters long.", minTitleLength)
		case n > maxTitleLength:
			errs["title"] = fmt.Sprintf("Title must be at most %d characters long.", maxTitleLength)
		}
	}
	if content != nil && len([]rune(*content)) < minContentLength {
		errs["content"] = fmt.Sprintf("Content must be at least %d characters long.", minContentLength)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// parseOrdering maps the ordering query param onto a whitelisted column and
// direction. Unknown fields fall back to the default newest-first order.
func parseOrdering(ordering string) (field string, desc bool) {
	field, desc = "created_at", true

	raw := ordering
	rawDesc := false
	if len(raw) > 0 && raw[0] == '-' {
		rawDesc = true
		raw = raw[1:]
	}
	if orderableFields[raw] {
		return raw, rawDesc
	}
	return field, desc
}

// paginate converts 1-based page params into a limit/offset pair, clamping
// the page size to its bounds.
func paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageSize, (page - 1) * pageSize
}
