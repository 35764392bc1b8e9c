package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/bloglist-api/internal/platform/logger"
	"github.com/phrazzld/bloglist-api/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel logs a 4xx response at WARN instead of DEBUG.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
// A 204 response has no body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog writes userMessage to the client and logs err,
// redacted, next to it. 5xx responses log at ERROR, everything else at DEBUG
// unless WithElevatedLogLevel is given.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	attrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	var o responseOptions
	for _, opt := range opts {
		opt(&o)
	}

	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case o.elevateLogLevel && status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	log.LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithError(w, r, status, userMessage)
}
