package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// UserStore keeps users in memory in creation order.
type UserStore struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*domain.User
	byUsername map[string]uuid.UUID
	order      []uuid.UUID
}

// NewUserStore returns an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{
		users:      make(map[uuid.UUID]*domain.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[user.Username]; taken {
		return store.ErrUsernameExists
	}
	if _, exists := s.users[user.ID]; exists {
		return fmt.Errorf("%w: user id %s", store.ErrDuplicate, user.ID)
	}

	s.users[user.ID] = copyUser(user)
	s.byUsername[user.Username] = user.ID
	s.order = append(s.order, user.ID)
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return copyUser(user), nil
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *UserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return copyUser(s.users[id]), nil
}

// Update implements store.UserStore.Update.
func (s *UserStore) Update(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	if current.Username != user.Username {
		if _, taken := s.byUsername[user.Username]; taken {
			return store.ErrUsernameExists
		}
		delete(s.byUsername, current.Username)
		s.byUsername[user.Username] = user.ID
	}

	updated := copyUser(user)
	updated.CreatedAt = current.CreatedAt
	s.users[user.ID] = updated
	return nil
}

// AppendBlog implements store.UserStore.AppendBlog.
func (s *UserStore) AppendBlog(_ context.Context, userID, blogID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	user.Blogs = append(user.Blogs, blogID)
	return nil
}

// List implements store.UserStore.List.
func (s *UserStore) List(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, copyUser(s.users[id]))
	}
	return users, nil
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	c.Blogs = slices.Clone(u.Blogs)
	if c.Blogs == nil {
		c.Blogs = []uuid.UUID{}
	}
	return &c
}
