package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bloglist-api/internal/api/shared"
	"github.com/phrazzld/bloglist-api/internal/service"
)

// UserHandler serves the user registration and listing endpoints.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /api/users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterParams{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user, nil))
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userToResponse(u.User, u.Blogs))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
