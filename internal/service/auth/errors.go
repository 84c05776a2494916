package auth

import "errors"

// Errors returned by JWTService. The auth middleware maps ErrExpiredToken to a
// dedicated message; every other token error becomes a generic 401.
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")

	// ErrEmptySubject is returned by GenerateToken; every token must name the actor.
	ErrEmptySubject = errors.New("token subject must not be empty")
)
