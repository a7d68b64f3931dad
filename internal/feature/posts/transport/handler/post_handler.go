// Package handler provides the HTTP handlers for the posts feature.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/api"
	"blog_backend/internal/feature/posts/domain"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/transport/http/dto"
	"blog_backend/internal/feature/posts/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/platform/markdown"
	"blog_backend/internal/shared/validation"
)

// dateLayouts accepted by the created_after/created_before filters.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	posts usecase.PostUsecase
}

// NewPostHandler creates a new PostHandler instance.
func NewPostHandler(posts usecase.PostUsecase) *PostHandler {
	return &PostHandler{posts: posts}
}

// List serves the open post listing with filtering, search, ordering and
// pagination. Only published posts ever appear here.
func (h *PostHandler) List(c *gin.Context) {
	params := usecase.ListParams{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}

	if v := c.Query("author"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "author must be a numeric user id"})
			return
		}
		authorID := uint(id)
		params.AuthorID = &authorID
	}
	if v := c.Query("is_published"); v != "" {
		published, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "is_published must be a boolean"})
			return
		}
		params.IsPublished = &published
	}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{
		{"created_after", &params.CreatedAfter},
		{"created_before", &params.CreatedBefore},
	} {
		if v := c.Query(p.name); v != "" {
			ts, err := parseDate(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid " + p.name + " date"})
				return
			}
			*p.dst = &ts
		}
	}
	params.Page = intQuery(c, "page", 1)
	params.PageSize = intQuery(c, "page_size", 0)

	posts, count, err := h.posts.List(c.Request.Context(), params)
	if err != nil {
		slog.Error("post listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, api.PageResponse[dto.PostRes]{Count: count, Results: toPostResList(posts)})
}

// Create handles authenticated post creation.
func (h *PostHandler) Create(c *gin.Context) {
	callerID, ok := jwtmw.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req dto.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	post, err := h.posts.Create(c.Request.Context(), callerID, usecase.CreateInput{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		h.writePostError(c, err, "post create")
		return
	}

	slog.Info("post created", "post_id", post.ID, "slug", post.Slug, "author_id", callerID)
	c.JSON(http.StatusCreated, toPostRes(post))
}

// Get serves a single post. Published posts are public; a draft resolves
// only for its author.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	callerID, _ := jwtmw.CallerID(c)

	post, err := h.posts.Get(c.Request.Context(), id, callerID)
	if err != nil {
		h.writePostError(c, err, "post fetch")
		return
	}

	c.JSON(http.StatusOK, toPostRes(post))
}

// Update handles PUT and PATCH edits by the author.
func (h *PostHandler) Update(c *gin.Context) {
	callerID, ok := jwtmw.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	post, err := h.posts.Update(c.Request.Context(), callerID, id, usecase.UpdateInput{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		h.writePostError(c, err, "post update")
		return
	}

	c.JSON(http.StatusOK, toPostRes(post))
}

// Delete removes the caller's own post.
func (h *PostHandler) Delete(c *gin.Context) {
	callerID, ok := jwtmw.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), callerID, id); err != nil {
		h.writePostError(c, err, "post delete")
		return
	}

	slog.Info("post deleted", "post_id", id, "author_id", callerID)
	c.Status(http.StatusNoContent)
}

// MyDrafts lists the caller's unpublished posts, newest first.
func (h *PostHandler) MyDrafts(c *gin.Context) {
	callerID, ok := jwtmw.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	posts, count, err := h.posts.Drafts(c.Request.Context(), callerID,
		intQuery(c, "page", 1), intQuery(c, "page_size", 0))
	if err != nil {
		slog.Error("drafts listing failed", "error", err, "author_id", callerID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, api.PageResponse[dto.PostRes]{Count: count, Results: toPostResList(posts)})
}

// Publish marks the caller's post as published.
func (h *PostHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish reverts the caller's post to a draft.
func (h *PostHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *PostHandler) setPublished(c *gin.Context, published bool) {
	callerID, ok := jwtmw.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	var (
		post *entity.Post
		err  error
	)
	if published {
		post, err = h.posts.Publish(c.Request.Context(), callerID, id)
	} else {
		post, err = h.posts.Unpublish(c.Request.Context(), callerID, id)
	}
	if err != nil {
		h.writePostError(c, err, "post publish toggle")
		return
	}

	c.JSON(http.StatusOK, toPostRes(post))
}

// writePostError maps usecase and domain errors onto the HTTP error taxonomy.
func (h *PostHandler) writePostError(c *gin.Context, err error, op string) {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, api.FieldErrorResponse{Errors: fieldErrs})
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: domain.ErrPostNotFound.Error()})
	case errors.Is(err, domain.ErrNotAuthor):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: domain.ErrNotAuthor.Error()})
	default:
		slog.Error(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

// postID parses the :id path param. A non-numeric id behaves like a
// missing post.
func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: domain.ErrPostNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func parseDate(v string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		ts, err := time.Parse(layout, v)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// toPostRes serializes a post, rendering its markdown body to HTML.
func toPostRes(p *entity.Post) dto.PostRes {
	return dto.PostRes{
		ID:              p.ID,
		Author:          p.Author.Email,
		AuthorUsername:  p.Author.Username,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		RenderedContent: markdown.Render(p.Content),
		IsPublished:     p.IsPublished,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPostResList(posts []entity.Post) []dto.PostRes {
	out := make([]dto.PostRes, 0, len(posts))
	for i := range posts {
		out = append(out, toPostRes(&posts[i]))
	}
	return out
}
