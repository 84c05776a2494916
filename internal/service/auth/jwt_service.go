// Package auth issues and validates the bearer tokens that guard the mutating
// card endpoints. A token's subject names the operator and is recorded as the
// audit actor on every write made with it.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing operator bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT for subject.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// It returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated claims of an operator token.
type Claims struct {
	Subject   string    `json:"sub,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
