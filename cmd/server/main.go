// Package main implements the entry point for the bloglist API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/phrazzld/bloglist-api/internal/config"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version, reset) against the configured database and exit")
	flag.Parse()

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		log.Fatalf("bloglist-api: %v", err)
	}
}

// run loads configuration, sets up logging and either executes a migration
// command or serves HTTP until ctx is canceled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("update_policy", cfg.Blogs.UpdatePolicy))

	if migrateCmd != "" {
		return runMigrations(ctx, cfg, l, migrateCmd, flag.Args()...)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(ctx)
}
