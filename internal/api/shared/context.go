package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
)

// ContextKey is the type of request context keys set by this package.
type ContextKey string

// Context keys for request-scoped values
const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TokenContextKey holds the raw bearer token, possibly empty.
	TokenContextKey ContextKey = "token"

	// UserContextKey holds the resolved *domain.User.
	UserContextKey ContextKey = "user"
)

// NewTraceID returns a random 32-character hex identifier.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, NewTraceID())
}

// WithTraceID adds the given trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithToken attaches a raw bearer token to the context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenContextKey, token)
}

// GetToken returns the bearer token attached to the context, or "".
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(TokenContextKey).(string)
	return token
}

// WithUser attaches the authenticated user to the context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// GetUser returns the authenticated user, or nil for anonymous requests.
func GetUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(UserContextKey).(*domain.User)
	return user
}
