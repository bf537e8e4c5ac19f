package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/phrazzld/planner/internal/config"
	"github.com/phrazzld/planner/internal/platform/postgres"
)

func migrationCommands() []string {
	return postgres.MigrationCommands
}

// runMigrations applies a goose command to the configured database. It needs
// database.url even when the server itself runs on the memory backend.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if !slices.Contains(postgres.MigrationCommands, command) {
		return fmt.Errorf("unknown migration command %q, expected one of %v", command, postgres.MigrationCommands)
	}
	if cfg.Database.URL == "" {
		return config.ErrDatabaseURLRequired
	}

	start := time.Now()

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database connection", "error", err)
		}
	}()

	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	logger.Info("migration finished", "command", command, "duration", time.Since(start).String())
	return nil
}
