package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bloglist-api/internal/api/shared"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
)

// TraceIDHeader echoes the request's trace ID back to the client.
const TraceIDHeader = "X-Trace-ID"

// TraceMiddleware adds a trace ID and a logger tagged with it to the request
// context. Apply it early so later handlers log with the trace ID.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithContext(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
