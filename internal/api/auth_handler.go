package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/bloglist-api/internal/api/shared"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
)

// Authenticator checks credentials and issues a session token.
// *auth.Service satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, *domain.User, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authenticator Authenticator
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authenticator Authenticator, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authenticator: authenticator,
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, user, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("user logged in", slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	})
}
