package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// Every method without an Fn override returns Err (nil by default) and zero values.
type MockUserStore struct {
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	UpdateFn        func(ctx context.Context, user *domain.User) error
	AppendBlogFn    func(ctx context.Context, userID, blogID uuid.UUID) error
	ListFn          func(ctx context.Context) ([]*domain.User, error)

	Err error
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.Err
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, store.ErrUserNotFound
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, store.ErrUserNotFound
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	return m.Err
}

// AppendBlog implements the UserStore interface
func (m *MockUserStore) AppendBlog(ctx context.Context, userID, blogID uuid.UUID) error {
	if m.AppendBlogFn != nil {
		return m.AppendBlogFn(ctx, userID, blogID)
	}
	return m.Err
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.User{}, m.Err
}
