package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/bloglist-api/internal/api/shared"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
)

// bearerPrefix is matched exactly, including case and the single space.
const bearerPrefix = "Bearer "

// UserResolver turns a raw token into the user it was issued for.
type UserResolver interface {
	ResolveUser(ctx context.Context, raw string) (*domain.User, error)
}

// ExtractToken copies the bearer token from the Authorization header into
// the request context. Requests without a recognised header carry an empty
// token. It never fails.
func ExtractToken(r *http.Request) (*http.Request, error) {
	header := r.Header.Get("Authorization")
	token := ""
	if strings.HasPrefix(header, bearerPrefix) {
		token = strings.TrimPrefix(header, bearerPrefix)
	}
	return r.WithContext(shared.WithToken(r.Context(), token)), nil
}

// AuthSteps resolves extracted tokens to users.
type AuthSteps struct {
	resolver UserResolver
}

// NewAuthSteps creates AuthSteps backed by resolver.
func NewAuthSteps(resolver UserResolver) *AuthSteps {
	return &AuthSteps{resolver: resolver}
}

// RequireUser resolves the extracted token and attaches the user. A missing,
// invalid or expired token, or one naming an unknown user, is an error.
// ExtractToken must run first.
func (a *AuthSteps) RequireUser(r *http.Request) (*http.Request, error) {
	user, err := a.resolver.ResolveUser(r.Context(), shared.GetToken(r.Context()))
	if err != nil {
		return r, err
	}
	return r.WithContext(shared.WithUser(r.Context(), user)), nil
}

// OptionalUser attaches the user when the extracted token resolves. A missing
// token, or one that fails to resolve, leaves the request anonymous; it
// never fails.
func (a *AuthSteps) OptionalUser(r *http.Request) (*http.Request, error) {
	if shared.GetToken(r.Context()) == "" {
		return r, nil
	}
	out, err := a.RequireUser(r)
	if err != nil {
		logger.FromContext(r.Context()).Debug("token ignored, continuing anonymously",
			slog.String("error", err.Error()))
		return r, nil
	}
	return out, nil
}

// UserFromRequest returns the user attached by RequireUser or OptionalUser,
// or nil.
func UserFromRequest(r *http.Request) *domain.User {
	return shared.GetUser(r.Context())
}
