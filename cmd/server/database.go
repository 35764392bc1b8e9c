package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bloglist-api/internal/platform/memory"
	"github.com/phrazzld/bloglist-api/internal/platform/sqlstore"
)

// driverMemory keeps all data in process and loses it on exit.
const driverMemory = "memory"

// setupStores builds the stores for the configured driver. SQL databases are
// migrated to the latest schema before use.
func (app *application) setupStores(ctx context.Context) error {
	driver := app.config.Database.Driver

	if driver == driverMemory {
		users := memory.NewUserStore()
		app.userStore = users
		app.blogStore = memory.NewBlogStore(users)
		app.logger.Warn("Using in-memory store, data will not survive a restart")
		return nil
	}

	dialect, err := sqlstore.DialectFor(driver)
	if err != nil {
		return err
	}

	db, err := sqlstore.Open(ctx, dialect, app.config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlstore.MigrateUp(ctx, db, dialect); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app.db = db
	app.userStore = sqlstore.NewUserStore(db, dialect, app.logger)
	app.blogStore = sqlstore.NewBlogStore(db, dialect, app.logger)

	app.logger.Info("Database connection established", slog.String("driver", dialect.Name()))
	return nil
}
