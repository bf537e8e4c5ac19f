package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/planner/internal/store"
)

// Backend implements store.Backend on a PostgreSQL connection pool.
type Backend struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.Backend = (*Backend)(nil)

// NewBackend wraps an open database handle.
// If logger is nil, a default logger will be used.
func NewBackend(db *sql.DB, logger *slog.Logger) (*Backend, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{db: db, logger: logger}, nil
}

// Stores returns stores bound to the connection pool. Each statement runs on
// its own, so writes should go through RunInTransaction.
func (b *Backend) Stores() store.Stores {
	return b.bind(b.db)
}

// RunInTransaction implements store.Transactor on a database/sql transaction.
func (b *Backend) RunInTransaction(ctx context.Context, fn store.StoresFn) error {
	return store.RunInTransaction(ctx, b.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, b.bind(tx))
	})
}

func (b *Backend) bind(db store.DBTX) store.Stores {
	return StoresFor(db, b.logger)
}

// StoresFor returns the postgres stores bound to db, which may be a pool or
// an open transaction.
func StoresFor(db store.DBTX, logger *slog.Logger) store.Stores {
	return store.Stores{
		Subjects:  NewPostgresSubjectStore(db, logger),
		Semesters: NewPostgresSemesterStore(db, logger),
		Exams:     NewPostgresExamStore(db, logger),
	}
}

// Open opens a pgx-backed connection pool, applies pool limits and checks
// connectivity.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
