//go:build integration

package testdb

import (
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/planner/internal/redact"
)

// URLEnvVars are checked in order for the test database URL.
var URLEnvVars = []string{"DATABASE_URL", "PLANNER_TEST_DATABASE_URL", "PLANNER_DATABASE_URL"}

// GetTestDatabaseURL returns the first non-empty URL from URLEnvVars, or "".
func GetTestDatabaseURL() string {
	for _, name := range URLEnvVars {
		if url := strings.TrimSpace(os.Getenv(name)); url != "" {
			slog.Debug("using test database", "source", name, "url", redact.String(url))
			return url
		}
	}
	if isCIEnvironment() {
		slog.Error("no database URL found in CI environment",
			"checked_variables", strings.Join(URLEnvVars, ", "))
	}
	return ""
}

// isCIEnvironment reports whether a common CI variable is set.
func isCIEnvironment() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}
