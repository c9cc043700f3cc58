package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the signed credential payload. Only the identity travels in
// the token; the role is resolved against the users table on every request.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SignInRequest is the payload for the sign-in/upsert flow. Identity is
// asserted by the upstream social login provider.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
	Status   string `json:"status"`
}

// TokenResponse returns the issued credential.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
