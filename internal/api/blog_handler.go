package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/bloglist-api/internal/api/middleware"
	"github.com/phrazzld/bloglist-api/internal/api/shared"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
	"github.com/phrazzld/bloglist-api/internal/service"
)

// BlogHandler serves the blog catalog endpoints. Mutating routes expect the
// auth pipeline to have run, so the requesting user, if any, is on the
// request context.
type BlogHandler struct {
	blogs  service.BlogService
	logger *slog.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogs service.BlogService, logger *slog.Logger) *BlogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogHandler{
		blogs:  blogs,
		logger: logger.With(slog.String("component", "blog_handler")),
	}
}

// List handles GET /api/blogs.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, blogsToResponse(blogs))
}

// Create handles POST /api/blogs.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromRequest(r)
	if user == nil {
		HandleAPIError(w, r, service.ErrUnauthorized)
		return
	}

	var req CreateBlogRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	created, err := h.blogs.Create(r.Context(), user, service.CreateBlogParams{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, blogToResponse(created))
}

// Update handles PUT /api/blogs/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Debug("invalid blog id", slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateBlogRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated, err := h.blogs.Update(r.Context(), middleware.UserFromRequest(r), id, service.UpdateBlogParams{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, blogToResponse(updated))
}

// Delete handles DELETE /api/blogs/{id}.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromRequest(r)
	if user == nil {
		HandleAPIError(w, r, service.ErrUnauthorized)
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.blogs.Delete(r.Context(), user, id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// Stats handles GET /api/blogs/stats.
func (h *BlogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.blogs.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(stats))
}
