package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
)

// BlogStore defines the interface for blog persistence.
type BlogStore interface {
	// Create saves a new blog.
	// Returns ErrInvalidEntity if the blog violates a storage constraint
	// (negative likes, unknown owner).
	Create(ctx context.Context, blog *domain.Blog) error

	// GetByID retrieves a blog by its ID.
	// Returns ErrBlogNotFound if the blog does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)

	// List returns all blogs in insertion order.
	List(ctx context.Context) ([]*domain.Blog, error)

	// Update replaces the mutable fields (title, author, url, likes) of a blog.
	// Owner and creation time are never changed.
	// Returns ErrBlogNotFound if the blog does not exist.
	Update(ctx context.Context, blog *domain.Blog) error

	// Delete removes a blog by ID.
	// Returns ErrBlogNotFound if the blog does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
