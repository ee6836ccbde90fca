package dto

import "github.com/noah-isme/elitebuilders-client/internal/models"

// LoginRequest carries the credentials for a password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest describes a new participant account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=120"`
}

// TokenResponse is returned by the login and register endpoints.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in,omitempty"`
	User        *models.User `json:"user,omitempty"`
}
