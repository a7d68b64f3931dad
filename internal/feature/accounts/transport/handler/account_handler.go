// Package handler provides the HTTP handlers for the accounts feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"blog_backend/internal/api"
	"blog_backend/internal/feature/accounts/domain/entity"
	"blog_backend/internal/feature/accounts/transport/http/dto"
	"blog_backend/internal/feature/accounts/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
)

// AccountUsecase defines the account workflow operations.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AccountUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	VerifyEmail(ctx context.Context, encodedUID, token string) error
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (access, refresh string, err error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, encodedUID, token, password, passwordConfirm string) error
	Profile(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint, in usecase.UpdateProfileInput) (*entity.User, error)
}

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	accounts AccountUsecase
}

// NewAccountHandler creates a new AccountHandler instance.
func NewAccountHandler(accounts AccountUsecase) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Register handles the user registration endpoint.
// - 400 with field errors on failed validation
// - 409 on a store-level duplicate
// - 201 with a message on success; the user stays logged out
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		writeBindError(c, err)
		return
	}

	_, err := h.accounts.Register(c.Request.Context(), usecase.RegisterInput{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		h.writeAccountError(c, err, "register", req.Email)
		return
	}

	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{
		Message: "User registered successfully. Please check your email to verify your account.",
	})
}

// VerifyEmail handles the account activation endpoint.
// Any failure yields the same generic error to prevent user enumeration.
func (h *AccountHandler) VerifyEmail(c *gin.Context) {
	uid := c.Param("uid")
	tok := c.Param("token")

	if err := h.accounts.VerifyEmail(c.Request.Context(), uid, tok); err != nil {
		slog.Warn("email verification failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid activation link"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Email verified successfully. You can now login."})
}

// Login handles the login endpoint.
// - 400 on malformed body
// - 401 on any credential failure (unknown email, wrong password, inactive account)
// - 200 with an access/refresh pair on success
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	access, refresh, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		// Do not expose the actual failure to prevent user enumeration
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: usecase.ErrInvalidCredentials.Error()})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenPairResponse{Access: access, Refresh: refresh})
}

// Refresh handles the token refresh endpoint.
func (h *AccountHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	access, err := h.accounts.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		slog.Warn("token refresh failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: usecase.ErrInvalidRefreshToken.Error()})
		return
	}

	c.JSON(http.StatusOK, api.TokenResponse{Access: access})
}

// RequestPasswordReset handles the password reset request endpoint.
func (h *AccountHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.accounts.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.writeAccountError(c, err, "password reset request", req.Email)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password reset email sent. Please check your email."})
}

// ConfirmPasswordReset handles the password reset confirmation endpoint.
func (h *AccountHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	err := h.accounts.ConfirmPasswordReset(c.Request.Context(),
		c.Param("uid"), c.Param("token"), req.Password, req.PasswordConfirm)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidResetLink), errors.Is(err, usecase.ErrExpiredResetLink):
			slog.Warn("password reset confirm failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			h.writeAccountError(c, err, "password reset confirm", "")
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{
		Message: "Password reset successfully. You can now login with your new password.",
	})
}

// Profile returns the authenticated user's own profile.
func (h *AccountHandler) Profile(c *gin.Context) {
	userID, ok := jwtmw.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	user, err := h.accounts.Profile(c.Request.Context(), userID)
	if err != nil {
		slog.Warn("profile fetch failed", "error", err, "user_id", userID)
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrUserNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, toProfileRes(user))
}

// UpdateProfile applies a partial update to the caller's own profile.
// Email, id and the join date are read-only.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	userID, ok := jwtmw.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req dto.ProfileUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), userID, usecase.UpdateProfileInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.writeAccountError(c, err, "profile update", "")
		return
	}

	c.JSON(http.StatusOK, toProfileRes(user))
}

// writeBindError turns a binding failure into the same field-keyed 400 body
// the usecase validation produces. Malformed JSON and type mismatches carry no
// field information and fall back to a plain error body.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	fieldErrs := make(usecase.FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			fieldErrs[field] = "This field is required."
		case "email":
			fieldErrs[field] = "Enter a valid email address."
		default:
			fieldErrs[field] = "This field is invalid."
		}
	}
	c.JSON(http.StatusBadRequest, api.FieldErrorResponse{Errors: fieldErrs})
}

// jsonFieldName converts a struct field name to its snake_case JSON key,
// e.g. PasswordConfirm -> password_confirm.
func jsonFieldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// writeAccountError maps usecase errors onto the HTTP error taxonomy.
func (h *AccountHandler) writeAccountError(c *gin.Context, err error, op, email string) {
	var fieldErrs usecase.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		slog.Warn(op+" rejected", "errors", fieldErrs, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.FieldErrorResponse{Errors: fieldErrs})
	case errors.Is(err, usecase.ErrEmailAlreadyExists), errors.Is(err, usecase.ErrUsernameAlreadyExists):
		slog.Warn(op+" conflict", "error", err, "email", email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

// toProfileRes serializes a user for profile responses.
func toProfileRes(u *entity.User) dto.ProfileRes {
	return dto.ProfileRes{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
