package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountentity "blog_backend/internal/feature/accounts/domain/entity"
	"blog_backend/internal/feature/posts/domain"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
)

// mockPostRepository is a PostRepository mock for decorator tests.
type mockPostRepository struct {
	findByIDFn func(ctx context.Context, id uint) (*entity.Post, error)
	updateFn   func(ctx context.Context, post *entity.Post) error
	deleteFn   func(ctx context.Context, post *entity.Post) error
}

func (m *mockPostRepository) Create(ctx context.Context, post *entity.Post) error { return nil }

func (m *mockPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrPostNotFound
}

func (m *mockPostRepository) Update(ctx context.Context, post *entity.Post) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, post *entity.Post) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return false, nil
}

func (m *mockPostRepository) List(ctx context.Context, f usecase.ListFilter) ([]entity.Post, int64, error) {
	return nil, 0, nil
}

func publishedPost(id uint) *entity.Post {
	return &entity.Post{
		ID:       id,
		AuthorID: 42,
		Author: accountentity.User{
			ID:       42,
			Email:    "author@example.com",
			Username: "author",
			Password: "$2a$10$bcrypthashthatmustneverreachredis",
		},
		Title:       "Cached Post",
		Slug:        "cached-post",
		Content:     "body long enough",
		IsPublished: true,
	}
}

func TestNewCachingPostRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingPostRepository(nil, 0, &mockPostRepository{}, "")
	assert.Equal(t, 5*time.Minute, repo.ttl)
	assert.Equal(t, "posts", repo.namespace)

	repo = NewCachingPostRepository(nil, time.Minute, &mockPostRepository{}, "blog")
	assert.Equal(t, time.Minute, repo.ttl)
	assert.Equal(t, "blog", repo.namespace)
}

func TestCachingPostRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	post := publishedPost(5)
	payload, err := json.Marshal(newCachedPost(post))
	require.NoError(t, err)

	t.Run("cache hit skips the database", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("posts:id:5").SetVal(string(payload))

		dbCalled := false
		inner := &mockPostRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
				dbCalled = true
				return post, nil
			},
		}
		repo := NewCachingPostRepository(rdb, time.Minute, inner, "")

		got, err := repo.FindByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, post.Slug, got.Slug)
		assert.False(t, dbCalled, "a cache hit must not query the database")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("authorship survives the cache round trip", func(t *testing.T) {
		// The entity excludes author fields from its JSON, so a hit must
		// rebuild them from the cached record or ownership checks break.
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("posts:id:5").RedisNil()
		mock.ExpectSet("posts:id:5", payload, time.Minute).SetVal("OK")
		mock.ExpectGet("posts:id:5").SetVal(string(payload))

		calls := 0
		inner := &mockPostRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
				calls++
				return post, nil
			},
		}
		repo := NewCachingPostRepository(rdb, time.Minute, inner, "")

		first, err := repo.FindByID(ctx, 5)
		require.NoError(t, err)
		require.Equal(t, uint(42), first.AuthorID)

		second, err := repo.FindByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, calls, "second lookup must be served from cache")
		assert.Equal(t, uint(42), second.AuthorID)
		assert.Equal(t, uint(42), second.Author.ID)
		assert.Equal(t, "author@example.com", second.Author.Email)
		assert.Equal(t, "author", second.Author.Username)
		assert.Equal(t, post.Title, second.Title)
		assert.Equal(t, post.Content, second.Content)
		assert.True(t, second.IsPublished)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("the password hash never reaches redis", func(t *testing.T) {
		assert.NotContains(t, string(payload), post.Author.Password)
	})

	t.Run("cache miss falls back and fills the cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("posts:id:5").RedisNil()
		mock.ExpectSet("posts:id:5", payload, time.Minute).SetVal("OK")

		inner := &mockPostRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
				return post, nil
			},
		}
		repo := NewCachingPostRepository(rdb, time.Minute, inner, "")

		got, err := repo.FindByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, uint(5), got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("drafts are never cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("posts:id:6").RedisNil()
		// No ExpectSet: storing a draft would fail ExpectationsWereMet

		draft := publishedPost(6)
		draft.IsPublished = false
		inner := &mockPostRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
				return draft, nil
			},
		}
		repo := NewCachingPostRepository(rdb, time.Minute, inner, "")

		got, err := repo.FindByID(ctx, 6)
		require.NoError(t, err)
		assert.False(t, got.IsPublished)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupted cache entry is dropped and refetched", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("posts:id:5").SetVal("{not json")
		mock.ExpectDel("posts:id:5").SetVal(1)
		mock.ExpectSet("posts:id:5", payload, time.Minute).SetVal("OK")

		inner := &mockPostRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
				return post, nil
			},
		}
		repo := NewCachingPostRepository(rdb, time.Minute, inner, "")

		got, err := repo.FindByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, uint(5), got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database errors pass through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("posts:id:9").RedisNil()

		inner := &mockPostRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
				return nil, domain.ErrPostNotFound
			},
		}
		repo := NewCachingPostRepository(rdb, time.Minute, inner, "")

		_, err := repo.FindByID(ctx, 9)
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil redis client bypasses caching entirely", func(t *testing.T) {
		inner := &mockPostRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
				return post, nil
			},
		}
		repo := NewCachingPostRepository(nil, time.Minute, inner, "")

		got, err := repo.FindByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, uint(5), got.ID)
	})
}

func TestCachingPostRepository_WriteInvalidation(t *testing.T) {
	ctx := context.Background()

	t.Run("update drops the cache entry", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectDel("posts:id:5").SetVal(1)

		repo := NewCachingPostRepository(rdb, time.Minute, &mockPostRepository{}, "")

		err := repo.Update(ctx, publishedPost(5))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete drops the cache entry", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectDel("posts:id:5").SetVal(1)

		repo := NewCachingPostRepository(rdb, time.Minute, &mockPostRepository{}, "")

		err := repo.Delete(ctx, publishedPost(5))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failed update does not invalidate", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		// No ExpectDel: invalidating on failure would fail ExpectationsWereMet

		inner := &mockPostRepository{
			updateFn: func(ctx context.Context, post *entity.Post) error {
				return errors.New("db down")
			},
		}
		repo := NewCachingPostRepository(rdb, time.Minute, inner, "")

		err := repo.Update(ctx, publishedPost(5))
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
