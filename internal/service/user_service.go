package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
	"github.com/phrazzld/bloglist-api/internal/service/auth"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// RegisterParams carries the fields of a registration request.
type RegisterParams struct {
	Username string
	Name     string
	Password string
}

// UserWithBlogs is a user with its blogs back-reference resolved. Ids of
// blogs that no longer exist are skipped.
type UserWithBlogs struct {
	User  *domain.User
	Blogs []*domain.Blog
}

// UserService provides user registration and listing
type UserService interface {
	// Register validates the request, hashes the password and stores a new user.
	// Returns store.ErrUsernameExists for a taken username.
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)

	// List returns all users in creation order with their blogs populated.
	List(ctx context.Context) ([]*UserWithBlogs, error)
}

type userServiceImpl struct {
	users  store.UserStore
	blogs  store.BlogStore
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	blogs store.BlogStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (UserService, error) {
	if users == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if blogs == nil {
		return nil, fmt.Errorf("blog store cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:  users,
		blogs:  blogs,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register.
func (s *userServiceImpl) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(params.Password) < domain.MinPasswordLength {
		return nil, domain.NewValidationError("password", "must be at least 3 characters long", domain.ErrValidation)
	}
	if len(params.Password) > domain.MaxPasswordLength {
		return nil, domain.NewValidationError("password", "must be at most 72 bytes long", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, newUserServiceError("register", err)
	}

	user, err := domain.NewUser(params.Username, params.Name, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("registration with taken username", slog.String("username", params.Username))
			return nil, err
		}
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, err
		}
		log.Error("failed to save user",
			slog.String("error", err.Error()),
			slog.String("username", params.Username))
		return nil, newUserServiceError("register", err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return user, nil
}

// List implements UserService.List.
func (s *userServiceImpl) List(ctx context.Context) ([]*UserWithBlogs, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, newUserServiceError("list", err)
	}

	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, newUserServiceError("list", err)
	}
	byID := make(map[uuid.UUID]*domain.Blog, len(blogs))
	for _, b := range blogs {
		byID[b.ID] = b
	}

	result := make([]*UserWithBlogs, 0, len(users))
	for _, u := range users {
		entry := &UserWithBlogs{User: u, Blogs: []*domain.Blog{}}
		for _, id := range u.Blogs {
			if b, ok := byID[id]; ok {
				entry.Blogs = append(entry.Blogs, b)
			}
		}
		result = append(result, entry)
	}
	return result, nil
}
