//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/planner/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds setup queries.
const TestTimeout = 10 * time.Second

// GetTestDBWithT opens the test database and closes it when t ends. The test
// is skipped when no database URL is configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, url)
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close database connection: %v", err)
		}
	})
	return db
}

// ResetSchema drops every migration and applies them again, leaving empty
// tables behind.
func ResetSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	require.NoError(t, postgres.Migrate(ctx, db, "reset", nil), "migration reset failed")
	require.NoError(t, postgres.Migrate(ctx, db, "up", nil), "migration up failed")
}
