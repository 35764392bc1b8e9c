package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bloglist-api/internal/config"
	"github.com/phrazzld/bloglist-api/internal/platform/sqlstore"
)

// runMigrations executes a goose command against the configured SQL database.
// The memory driver has no schema to migrate.
func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string, args ...string) error {
	if cfg.Database.Driver == driverMemory {
		return fmt.Errorf("migrations are not supported for the %s driver", driverMemory)
	}

	dialect, err := sqlstore.DialectFor(cfg.Database.Driver)
	if err != nil {
		return err
	}

	db, err := sqlstore.Open(ctx, dialect, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", slog.String("error", closeErr.Error()))
		}
	}()

	logger.Info("Executing migrations",
		slog.String("command", command),
		slog.String("driver", dialect.Name()))

	if err := sqlstore.Migrate(ctx, db, dialect, command, args...); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	logger.Info("Migrations completed", slog.String("command", command))
	return nil
}
