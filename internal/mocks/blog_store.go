package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// MockBlogStore implements store.BlogStore for testing.
type MockBlogStore struct {
	CreateFn  func(ctx context.Context, blog *domain.Blog) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	ListFn    func(ctx context.Context) ([]*domain.Blog, error)
	UpdateFn  func(ctx context.Context, blog *domain.Blog) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	Err error
}

var _ store.BlogStore = (*MockBlogStore)(nil)

// Create implements the BlogStore interface
func (m *MockBlogStore) Create(ctx context.Context, blog *domain.Blog) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, blog)
	}
	return m.Err
}

// GetByID implements the BlogStore interface
func (m *MockBlogStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, store.ErrBlogNotFound
}

// List implements the BlogStore interface
func (m *MockBlogStore) List(ctx context.Context) ([]*domain.Blog, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.Blog{}, m.Err
}

// Update implements the BlogStore interface
func (m *MockBlogStore) Update(ctx context.Context, blog *domain.Blog) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, blog)
	}
	return m.Err
}

// Delete implements the BlogStore interface
func (m *MockBlogStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}
