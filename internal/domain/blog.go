package domain

import (
	"time"

	"github.com/google/uuid"
)

// Blog is a catalog entry pointing at an external blog post.
type Blog struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	OwnerID   uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// NewBlog creates a Blog owned by ownerID. Likes are taken as given.
func NewBlog(ownerID uuid.UUID, title, author, url string, likes int) (*Blog, error) {
	now := time.Now().UTC()
	blog := &Blog{
		ID:        uuid.New(),
		Title:     title,
		Author:    author,
		URL:       url,
		Likes:     likes,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := blog.ValidateFields(); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, NewValidationError("owner", "cannot be empty", ErrValidation)
	}

	return blog, nil
}

// ValidateFields checks the fields supplied by clients.
// The likes lower bound is a storage constraint and is checked by Validate.
func (b *Blog) ValidateFields() error {
	if b.Title == "" {
		return NewValidationError("title", "is required", ErrValidation)
	}
	if b.URL == "" {
		return NewValidationError("url", "is required", ErrValidation)
	}
	return nil
}

// Validate checks every invariant a stored Blog must satisfy.
func (b *Blog) Validate() error {
	if b.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrValidation)
	}
	if err := b.ValidateFields(); err != nil {
		return err
	}
	if b.Likes < 0 {
		return NewValidationError("likes", "cannot be negative", ErrValidation)
	}
	if b.OwnerID == uuid.Nil {
		return NewValidationError("owner", "cannot be empty", ErrValidation)
	}
	return nil
}

// IsOwnedBy reports whether userID created the blog. Both ids are compared in
// their canonical string form.
func (b *Blog) IsOwnedBy(userID uuid.UUID) bool {
	return b.OwnerID.String() == userID.String()
}
