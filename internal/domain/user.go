package domain

import (
	"time"

	"github.com/google/uuid"
)

// Username and password length limits enforced at registration.
const (
	MinUsernameLength = 3
	MinPasswordLength = 3
	// MaxPasswordLength is bcrypt's input limit.
	MaxPasswordLength = 72
)

// User represents a registered author of blog entries.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	// Blogs lists the ids of blogs this user created, in creation order.
	// It is a convenience back-reference: Blog.OwnerID is authoritative, and ids
	// of deleted blogs are left in place.
	Blogs     []uuid.UUID `json:"blogs"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUser creates a new User with a fresh id. The password must already be hashed.
func NewUser(username, name, hashedPassword string) (*User, error) {
	user := &User{
		ID:             uuid.New(),
		Username:       username,
		Name:           name,
		HashedPassword: hashedPassword,
		Blogs:          []uuid.UUID{},
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrValidation)
	}
	if u.Username == "" {
		return NewValidationError("username", "is required", ErrValidation)
	}
	if len(u.Username) < MinUsernameLength {
		return NewValidationError("username", "must be at least 3 characters long", ErrValidation)
	}
	if u.Name == "" {
		return NewValidationError("name", "is required", ErrValidation)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "hash cannot be empty", ErrValidation)
	}
	return nil
}

// AppendBlog records blogID in the user's back-reference list.
func (u *User) AppendBlog(blogID uuid.UUID) {
	u.Blogs = append(u.Blogs, blogID)
}

// OwnerProjection is the public view of a user embedded in blog responses.
type OwnerProjection struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Projection returns the owner view of u.
func (u *User) Projection() OwnerProjection {
	return OwnerProjection{Username: u.Username, Name: u.Name}
}
