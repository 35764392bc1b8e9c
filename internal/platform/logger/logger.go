// Package logger provides structured logging functionality for the application.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/bloglist-api/internal/config"
)

type contextKey struct{}

var loggerKey = contextKey{}

// Setup initializes the application's logging system based on the provided
// configuration. It creates a structured JSON logger writing to stdout with the
// configured level and installs it as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return SetupWithWriter(cfg, os.Stdout), nil
}

// SetupWithWriter is Setup with an explicit output, used by tests.
func SetupWithWriter(cfg config.ServerConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel),
	}

	logger := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(logger)

	return logger
}

// ParseLevel maps a configured level name to a slog.Level (case-insensitive).
// Unknown names fall back to info and emit a warning.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", name,
			"default_level", "info")
		return slog.LevelInfo
	}
}

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when the
// context carries none.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if fallback == nil {
		return slog.Default()
	}
	return fallback
}
