// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	accountentity "blog_backend/internal/feature/accounts/domain/entity"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
)

// cachedPost is the Redis representation of a post. The entity's author
// fields are excluded from client JSON (`json:"-"`), so round-tripping the
// entity itself would drop authorship on every hit. A dedicated record
// keeps the author id and identity fields without persisting the full user
// row, password hash included, into Redis.
type cachedPost struct {
	ID             uint      `json:"id"`
	AuthorID       uint      `json:"author_id"`
	AuthorEmail    string    `json:"author_email"`
	AuthorUsername string    `json:"author_username"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Content        string    `json:"content"`
	IsPublished    bool      `json:"is_published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newCachedPost(p *entity.Post) cachedPost {
	return cachedPost{
		ID:             p.ID,
		AuthorID:       p.AuthorID,
		AuthorEmail:    p.Author.Email,
		AuthorUsername: p.Author.Username,
		Title:          p.Title,
		Slug:           p.Slug,
		Content:        p.Content,
		IsPublished:    p.IsPublished,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (cp cachedPost) toEntity() *entity.Post {
	return &entity.Post{
		ID:       cp.ID,
		AuthorID: cp.AuthorID,
		Author: accountentity.User{
			ID:       cp.AuthorID,
			Email:    cp.AuthorEmail,
			Username: cp.AuthorUsername,
		},
		Title:       cp.Title,
		Slug:        cp.Slug,
		Content:     cp.Content,
		IsPublished: cp.IsPublished,
		CreatedAt:   cp.CreatedAt,
		UpdatedAt:   cp.UpdatedAt,
	}
}

// CachingPostRepository decorates a PostRepository with Redis caching of
// single-post lookups. It implements the decorator pattern, transparently
// adding caching without modifying the underlying repository.
//
// Only published posts are cached: drafts change often and their
// visibility is decided per caller, so they always hit the database.
type CachingPostRepository struct {
	inner     usecase.PostRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that the decorator still satisfies the interface.
var _ usecase.PostRepository = (*CachingPostRepository)(nil)

// NewCachingPostRepository decorates a PostRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "posts".
func NewCachingPostRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PostRepository, namespace string) *CachingPostRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "posts"
	}
	return &CachingPostRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create passes through; a fresh post has no cache entry to invalidate.
func (c *CachingPostRepository) Create(ctx context.Context, post *entity.Post) error {
	return c.inner.Create(ctx, post)
}

// FindByID retrieves a post, checking cache first then falling back to the database.
func (c *CachingPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var cp cachedPost
		if err := json.Unmarshal(b, &cp); err == nil && cp.ID != 0 {
			return cp.toEntity(), nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort), published posts only
	if out.IsPublished {
		if b, err := json.Marshal(newCachedPost(out)); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		}
	}

	return out, nil
}

// Update writes through and drops the stale cache entry.
func (c *CachingPostRepository) Update(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Update(ctx, post); err != nil {
		return err
	}
	c.invalidate(ctx, post.ID)
	return nil
}

// Delete removes the post and its cache entry.
func (c *CachingPostRepository) Delete(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Delete(ctx, post); err != nil {
		return err
	}
	c.invalidate(ctx, post.ID)
	return nil
}

// SlugExists passes through; slug probes are creation-time only.
func (c *CachingPostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return c.inner.SlugExists(ctx, slug)
}

// List passes through. Listing results depend on too many filter
// combinations to cache usefully.
func (c *CachingPostRepository) List(ctx context.Context, f usecase.ListFilter) ([]entity.Post, int64, error) {
	return c.inner.List(ctx, f)
}

func (c *CachingPostRepository) invalidate(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	// Best effort: don't fail the write if cache deletion fails
	_ = c.rdb.Del(ctx, c.cacheKey(id)).Err()
}

// cacheKey generates the cache key for a single post.
func (c *CachingPostRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}
