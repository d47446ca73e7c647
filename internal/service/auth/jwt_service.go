// Package auth provides JWT token issuance/validation and password
// verification for the API's authentication endpoints.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Claims represents the validated claims extracted from a JWT token.
type Claims struct {
	// UserID is the unique identifier of the authenticated user
	UserID uuid.UUID

	// TokenType is either "access" or "refresh"
	TokenType string

	// ExpiresAt is when the token expires
	ExpiresAt time.Time
}

// JWTService defines the interface for JWT token operations.
type JWTService interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// GenerateRefreshToken creates a signed refresh token for the given user.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates an access token and returns its claims.
	// Returns ErrWrongTokenType if given a refresh token.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// ValidateRefreshToken validates a refresh token and returns its claims.
	// Returns ErrWrongTokenType if given an access token.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}
