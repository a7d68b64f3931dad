// Package dto defines data transfer objects for the accounts feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the register endpoint.
// Structural checks (presence, email format) live in the binding tags; the
// field-level policy checks run in the usecase.
type RegisterReq struct {
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// LoginReq represents the request body for the login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshReq represents the request body for the token refresh endpoint.
type RefreshReq struct {
	Refresh string `json:"refresh" binding:"required"`
}

// PasswordResetReq represents the request body for the password reset request endpoint.
type PasswordResetReq struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmReq represents the request body for the password reset confirm endpoint.
type PasswordResetConfirmReq struct {
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// ProfileUpdateReq represents the request body for a partial profile update.
// Absent fields stay unchanged.
type ProfileUpdateReq struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// ProfileRes represents a user profile response.
type ProfileRes struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	DateJoined string `json:"date_joined"`
}
