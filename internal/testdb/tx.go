//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/phrazzld/planner/internal/platform/postgres"
	"github.com/phrazzld/planner/internal/store"
	"github.com/stretchr/testify/require"
)

// WithTx runs fn against stores bound to a transaction that is rolled back
// afterwards, so the test leaves no rows behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, stores store.Stores)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, postgres.StoresFor(tx, nil))
}
