package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/config"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// BlogWithOwner is a blog together with the public view of its creator.
// Owner is nil when the creating user no longer exists.
type BlogWithOwner struct {
	Blog  *domain.Blog
	Owner *domain.OwnerProjection
}

// CreateBlogParams carries the client-supplied fields of a new blog.
// A nil Likes means the field was absent and defaults to 0.
type CreateBlogParams struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

// UpdateBlogParams replaces every mutable field of a blog.
// A nil Likes resets the count to 0.
type UpdateBlogParams struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

// CatalogStats summarises the whole catalog. The pointer fields are nil for
// an empty catalog.
type CatalogStats struct {
	TotalLikes int
	Favorite   *domain.BlogSummary
	MostBlogs  *domain.AuthorBlogCount
	MostLikes  *domain.AuthorLikes
}

// BlogService provides blog catalog operations
type BlogService interface {
	// List returns every blog in store order with its owner projection.
	List(ctx context.Context) ([]*BlogWithOwner, error)

	// Create stores a new blog owned by owner and records it in the owner's
	// blogs list. owner must be non-nil.
	Create(ctx context.Context, owner *domain.User, params CreateBlogParams) (*BlogWithOwner, error)

	// Update replaces title, author, url and likes. Whether requester must be
	// the owner depends on the configured update policy.
	Update(ctx context.Context, requester *domain.User, id uuid.UUID, params UpdateBlogParams) (*BlogWithOwner, error)

	// Delete removes a blog. Only its owner may delete it.
	Delete(ctx context.Context, requester *domain.User, id uuid.UUID) error

	// Stats computes catalog statistics.
	Stats(ctx context.Context) (*CatalogStats, error)
}

type blogServiceImpl struct {
	blogs        store.BlogStore
	users        store.UserStore
	updatePolicy string
	logger       *slog.Logger
}

// NewBlogService creates a BlogService. updatePolicy is one of
// config.UpdatePolicyOpen or config.UpdatePolicyOwner.
func NewBlogService(
	blogs store.BlogStore,
	users store.UserStore,
	updatePolicy string,
	logger *slog.Logger,
) (BlogService, error) {
	if blogs == nil {
		return nil, fmt.Errorf("blog store cannot be nil")
	}
	if users == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	switch updatePolicy {
	case config.UpdatePolicyOpen, config.UpdatePolicyOwner:
	default:
		return nil, fmt.Errorf("unknown update policy %q", updatePolicy)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &blogServiceImpl{
		blogs:        blogs,
		users:        users,
		updatePolicy: updatePolicy,
		logger:       logger.With(slog.String("component", "blog_service")),
	}, nil
}

// List implements BlogService.List.
func (s *blogServiceImpl) List(ctx context.Context) ([]*BlogWithOwner, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, newBlogServiceError("list", err)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, newBlogServiceError("list", err)
	}
	owners := make(map[uuid.UUID]domain.OwnerProjection, len(users))
	for _, u := range users {
		owners[u.ID] = u.Projection()
	}

	result := make([]*BlogWithOwner, 0, len(blogs))
	for _, blog := range blogs {
		entry := &BlogWithOwner{Blog: blog}
		if owner, ok := owners[blog.OwnerID]; ok {
			entry.Owner = &owner
		}
		result = append(result, entry)
	}
	return result, nil
}

// Create implements BlogService.Create.
//
// The blog insert and the owner's back-reference append are separate store
// calls; if the second fails the blog exists without a back-reference. The
// append goes through UserStore.AppendBlog rather than a user update, so a
// stale owner snapshot never overwrites entries added by other requests.
func (s *blogServiceImpl) Create(
	ctx context.Context,
	owner *domain.User,
	params CreateBlogParams,
) (*BlogWithOwner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if owner == nil {
		return nil, ErrUnauthorized
	}

	likes := 0
	if params.Likes != nil {
		likes = *params.Likes
	}

	blog, err := domain.NewBlog(owner.ID, params.Title, params.Author, params.URL, likes)
	if err != nil {
		return nil, err
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, err
		}
		return nil, newBlogServiceError("create", err)
	}

	if err := s.users.AppendBlog(ctx, owner.ID, blog.ID); err != nil {
		log.Error("blog created but owner back-reference not saved",
			slog.String("error", err.Error()),
			slog.String("blog_id", blog.ID.String()),
			slog.String("user_id", owner.ID.String()))
		return nil, newBlogServiceError("create", err)
	}
	owner.AppendBlog(blog.ID)

	log.Info("blog created",
		slog.String("blog_id", blog.ID.String()),
		slog.String("user_id", owner.ID.String()))

	projection := owner.Projection()
	return &BlogWithOwner{Blog: blog, Owner: &projection}, nil
}

// Update implements BlogService.Update.
func (s *blogServiceImpl) Update(
	ctx context.Context,
	requester *domain.User,
	id uuid.UUID,
	params UpdateBlogParams,
) (*BlogWithOwner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.updatePolicy == config.UpdatePolicyOwner && requester == nil {
		return nil, ErrUnauthorized
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrapLookup("update", err)
	}

	if s.updatePolicy == config.UpdatePolicyOwner && !blog.IsOwnedBy(requester.ID) {
		log.Warn("update of blog by non-owner",
			slog.String("blog_id", id.String()),
			slog.String("user_id", requester.ID.String()))
		return nil, ErrNotOwned
	}

	blog.Title = params.Title
	blog.Author = params.Author
	blog.URL = params.URL
	blog.Likes = 0
	if params.Likes != nil {
		blog.Likes = *params.Likes
	}
	if err := blog.ValidateFields(); err != nil {
		return nil, err
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) || store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, newBlogServiceError("update", err)
	}

	log.Debug("blog updated", slog.String("blog_id", id.String()))

	entry := &BlogWithOwner{Blog: blog}
	owner, err := s.users.GetByID(ctx, blog.OwnerID)
	switch {
	case err == nil:
		projection := owner.Projection()
		entry.Owner = &projection
	case !errors.Is(err, store.ErrUserNotFound):
		return nil, newBlogServiceError("update", err)
	}
	return entry, nil
}

// Delete implements BlogService.Delete. The owner's blogs list keeps the id.
func (s *blogServiceImpl) Delete(ctx context.Context, requester *domain.User, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if requester == nil {
		return ErrUnauthorized
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return s.wrapLookup("delete", err)
	}

	if !blog.IsOwnedBy(requester.ID) {
		log.Warn("delete of blog by non-owner",
			slog.String("blog_id", id.String()),
			slog.String("user_id", requester.ID.String()))
		return ErrNotOwned
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return newBlogServiceError("delete", err)
	}

	log.Info("blog deleted",
		slog.String("blog_id", id.String()),
		slog.String("user_id", requester.ID.String()))
	return nil
}

// Stats implements BlogService.Stats.
func (s *blogServiceImpl) Stats(ctx context.Context) (*CatalogStats, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, newBlogServiceError("stats", err)
	}

	return &CatalogStats{
		TotalLikes: domain.TotalLikes(blogs),
		Favorite:   domain.FavoriteBlog(blogs),
		MostBlogs:  domain.MostBlogs(blogs),
		MostLikes:  domain.MostLikes(blogs),
	}, nil
}

func (s *blogServiceImpl) wrapLookup(operation string, err error) error {
	if store.IsNotFoundError(err) {
		return err
	}
	return newBlogServiceError(operation, err)
}
