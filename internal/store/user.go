package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
)

// UserStore defines the interface for user (credential) persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must carry a hashed password.
	// Returns ErrUsernameExists if the username is already taken.
	// Returns ErrInvalidEntity wrapping the domain error if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, including the blogs back-reference.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Update persists a complete user: name, username and the blogs back-reference.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// AppendBlog adds blogID to the end of the user's blogs back-reference
	// without rewriting the existing entries. Concurrent appends for the same
	// user are all kept.
	// Returns ErrUserNotFound if the user does not exist.
	AppendBlog(ctx context.Context, userID, blogID uuid.UUID) error

	// List returns all users in creation order.
	List(ctx context.Context) ([]*domain.User, error)
}
