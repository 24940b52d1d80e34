package auth

import (
	"github.com/lucasmedina/adbridge-backend/internal/accounts"
)

// LoginRequest is the credential payload accepted by the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted token and the authenticated account.
type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	User        *accounts.UserDTO `json:"user"`
}

// RegisterResponse returns the freshly created account.
type RegisterResponse struct {
	User *accounts.UserDTO `json:"user"`
}
