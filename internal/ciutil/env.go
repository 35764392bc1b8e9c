package ciutil

import (
	"log/slog"
	"os"

	"github.com/phrazzld/bloglist-api/internal/redact"
)

// Environment variables read by this package.
const (
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	// EnvTestDBURL is the preferred name for the integration test database.
	EnvTestDBURL = "BLOGLIST_TEST_DB_URL"
	// EnvDatabaseURL is the conventional fallback.
	EnvDatabaseURL = "DATABASE_URL"
)

var ciMarkers = []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI}

// IsCI reports whether any common CI provider variable is set.
func IsCI() bool {
	for _, name := range ciMarkers {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the value of the first non-empty environment
// variable in envVars, or defaultValue. Using anything but the first name
// logs a warning.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		if i > 0 && logger != nil {
			logger.Warn("Using fallback environment variable",
				slog.String("used_var", envVar),
				slog.String("preferred_var", envVars[0]),
				slog.String("value", redact.String(val)))
		}
		return val
	}
	return defaultValue
}
