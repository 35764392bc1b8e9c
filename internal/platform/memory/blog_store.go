package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// BlogStore keeps blogs in memory in insertion order.
//
// When users is set, Create rejects blogs whose owner is unknown, mirroring
// the foreign key of the SQL schema.
type BlogStore struct {
	mu    sync.RWMutex
	blogs map[uuid.UUID]*domain.Blog
	order []uuid.UUID
	users store.UserStore
}

// NewBlogStore returns an empty BlogStore. users may be nil.
func NewBlogStore(users store.UserStore) *BlogStore {
	return &BlogStore{
		blogs: make(map[uuid.UUID]*domain.Blog),
		users: users,
	}
}

var _ store.BlogStore = (*BlogStore)(nil)

// Create implements store.BlogStore.Create.
func (s *BlogStore) Create(ctx context.Context, blog *domain.Blog) error {
	if err := blog.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if s.users != nil {
		if _, err := s.users.GetByID(ctx, blog.OwnerID); err != nil {
			return fmt.Errorf("%w: owner %s: %w", store.ErrInvalidEntity, blog.OwnerID, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blogs[blog.ID]; exists {
		return fmt.Errorf("%w: blog id %s", store.ErrDuplicate, blog.ID)
	}

	c := *blog
	s.blogs[blog.ID] = &c
	s.order = append(s.order, blog.ID)
	return nil
}

// GetByID implements store.BlogStore.GetByID.
func (s *BlogStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blog, ok := s.blogs[id]
	if !ok {
		return nil, store.ErrBlogNotFound
	}
	c := *blog
	return &c, nil
}

// List implements store.BlogStore.List.
func (s *BlogStore) List(_ context.Context) ([]*domain.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blogs := make([]*domain.Blog, 0, len(s.order))
	for _, id := range s.order {
		c := *s.blogs[id]
		blogs = append(blogs, &c)
	}
	return blogs, nil
}

// Update implements store.BlogStore.Update.
func (s *BlogStore) Update(_ context.Context, blog *domain.Blog) error {
	if err := blog.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.blogs[blog.ID]
	if !ok {
		return store.ErrBlogNotFound
	}

	blog.UpdatedAt = time.Now().UTC()
	current.Title = blog.Title
	current.Author = blog.Author
	current.URL = blog.URL
	current.Likes = blog.Likes
	current.UpdatedAt = blog.UpdatedAt
	return nil
}

// Delete implements store.BlogStore.Delete.
func (s *BlogStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return store.ErrBlogNotFound
	}
	delete(s.blogs, id)
	s.order = slices.DeleteFunc(s.order, func(other uuid.UUID) bool { return other == id })
	return nil
}
