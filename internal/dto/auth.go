package dto

import (
	"time"

	"github.com/Ferhadbb/BankSite/internal/models"
)

// Auth Request DTOs

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80,username"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=1,max=120"`
}

// LoginRequest represents the request payload for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents the request payload for profile updates
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=120"`
}

// ChangePasswordRequest represents the request payload for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// Auth Response DTOs

// TokenResponse represents a successful login
type TokenResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// RegisterResponse represents a successful registration
type RegisterResponse struct {
	User    *models.User `json:"user"`
	Message string       `json:"message"`
}

// ProfileResponse represents the current user's profile
type ProfileResponse struct {
	User *models.User `json:"user"`
}
