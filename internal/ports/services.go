package ports

import (
	"github.com/journalkeep/core/internal/domain/entities"
)

// Claims carries the identity extracted from a validated access token
type Claims struct {
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	Role   entities.UserRole `json:"role"`
}

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful registration or login
type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	User        entities.Record `json:"user"`
}

// ForgotPasswordRequest is the payload for requesting a reset link
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse is returned after a reset link was issued. The
// link is only populated when no mail transport is configured and the app
// is explicitly not running in production.
type ForgotPasswordResponse struct {
	Message   string `json:"message"`
	ResetLink string `json:"reset_link,omitempty"`
}

// ResetPasswordRequest is the payload for consuming a reset token
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// SyncGoalsRequest is the payload for a full-replace goal sync
type SyncGoalsRequest struct {
	UserID string            `json:"userId"`
	Goals  []entities.Record `json:"goals"`
}
