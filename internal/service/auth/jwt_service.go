package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT embedding the user's id and username.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken for expired tokens and ErrInvalidToken for
	// anything else that fails to verify.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the decoded content of a verified token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID
	// Username at the time of issue. Informational only; lookups use UserID.
	Username string

	Subject  string
	IssuedAt time.Time
	// ExpiresAt is zero when the token never expires.
	ExpiresAt time.Time
	ID        string
}
