package service

import (
	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and validating bearer tokens.
// Tokens carry only the user id as a claim; the auth middleware resolves it
// back to the caller's identity on each request.
type TokenService interface {
	// GenerateToken creates a new signed bearer token for the given user.
	GenerateToken(userID uuid.UUID) (string, error)

	// ValidateToken checks a token string and returns the user id it carries.
	ValidateToken(tokenString string) (uuid.UUID, error)
}
