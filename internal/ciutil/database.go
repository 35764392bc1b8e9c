package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/phrazzld/bloglist-api/internal/redact"
)

// Credentials and options of the Postgres service container used in CI.
const (
	StandardCIUser     = "postgres"
	StandardCIPassword = "postgres"
	StandardCIPort     = "5432"
	StandardCIDatabase = "bloglist_test"
	StandardCIOptions  = "sslmode=disable"
)

// GetTestDatabaseURL returns the Postgres URL for integration tests, or ""
// when none is configured. EnvTestDBURL wins over EnvDatabaseURL. In CI the
// URL is rewritten to the standard service container credentials.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks([]string{EnvTestDBURL, EnvDatabaseURL}, "", logger)
	if dbURL == "" || !IsCI() {
		return dbURL
	}

	standardized, err := standardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Error("Failed to standardize database URL",
				slog.String("error", err.Error()),
				slog.String("original_url", redact.String(dbURL)))
		}
		return dbURL
	}

	if standardized != dbURL && logger != nil {
		logger.Info("Standardized database URL for CI environment",
			slog.String("original", redact.String(dbURL)),
			slog.String("standardized", redact.String(standardized)))
	}
	return standardized
}

// standardizeDatabaseURL swaps in the CI credentials and fills in a missing
// port, database name and options. Non-postgres URLs are returned unchanged.
func standardizeDatabaseURL(dbURL string) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return dbURL, nil
	}

	out := *parsed
	out.User = url.UserPassword(StandardCIUser, StandardCIPassword)

	host := parsed.Hostname()
	if parsed.Port() == "" && (host == "" || host == "localhost" || host == "127.0.0.1") {
		if host == "" {
			host = "localhost"
		}
		out.Host = host + ":" + StandardCIPort
	}
	if strings.TrimPrefix(parsed.Path, "/") == "" {
		out.Path = "/" + StandardCIDatabase
	}
	if parsed.RawQuery == "" {
		out.RawQuery = StandardCIOptions
	}

	return out.String(), nil
}
