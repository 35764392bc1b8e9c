package api

import (
	"github.com/google/uuid"

	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=3,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// CreateBlogRequest defines the payload for creating a blog.
// Likes is a pointer so an absent field can be told apart from 0.
type CreateBlogRequest struct {
	Title  string `json:"title"  validate:"required"`
	Author string `json:"author"`
	URL    string `json:"url"    validate:"required"`
	Likes  *int   `json:"likes"`
}

// UpdateBlogRequest replaces every mutable field of a blog.
type UpdateBlogRequest struct {
	Title  string `json:"title"  validate:"required"`
	Author string `json:"author"`
	URL    string `json:"url"    validate:"required"`
	Likes  *int   `json:"likes"`
}

// BlogResponse is the public representation of a blog.
type BlogResponse struct {
	ID     uuid.UUID               `json:"id"`
	Title  string                  `json:"title"`
	Author string                  `json:"author"`
	URL    string                  `json:"url"`
	Likes  int                     `json:"likes"`
	Owner  *domain.OwnerProjection `json:"owner"`
}

// UserBlogResponse is a blog as listed under its owner, without the owner.
type UserBlogResponse struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	URL    string    `json:"url"`
	Likes  int       `json:"likes"`
}

// UserResponse is the public representation of a user. The password hash is
// never included.
type UserResponse struct {
	ID       uuid.UUID          `json:"id"`
	Username string             `json:"username"`
	Name     string             `json:"name"`
	Blogs    []UserBlogResponse `json:"blogs"`
}

// StatsResponse carries catalog statistics. The pointer fields are null on an
// empty catalog.
type StatsResponse struct {
	TotalLikes int                     `json:"total_likes"`
	Favorite   *domain.BlogSummary     `json:"favorite"`
	MostBlogs  *domain.AuthorBlogCount `json:"most_blogs"`
	MostLikes  *domain.AuthorLikes     `json:"most_likes"`
}

func blogToResponse(entry *service.BlogWithOwner) BlogResponse {
	b := entry.Blog
	return BlogResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
		Owner:  entry.Owner,
	}
}

func blogsToResponse(entries []*service.BlogWithOwner) []BlogResponse {
	out := make([]BlogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, blogToResponse(e))
	}
	return out
}

func userToResponse(user *domain.User, blogs []*domain.Blog) UserResponse {
	resp := UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Blogs:    make([]UserBlogResponse, 0, len(blogs)),
	}
	for _, b := range blogs {
		resp.Blogs = append(resp.Blogs, UserBlogResponse{
			ID:     b.ID,
			Title:  b.Title,
			Author: b.Author,
			URL:    b.URL,
			Likes:  b.Likes,
		})
	}
	return resp
}

func statsToResponse(stats *service.CatalogStats) StatsResponse {
	return StatsResponse{
		TotalLikes: stats.TotalLikes,
		Favorite:   stats.Favorite,
		MostBlogs:  stats.MostBlogs,
		MostLikes:  stats.MostLikes,
	}
}
