package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bloglist-api/internal/config"
	"github.com/phrazzld/bloglist-api/internal/service"
	"github.com/phrazzld/bloglist-api/internal/service/auth"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	// db is nil for the memory driver.
	db *sql.DB

	userStore store.UserStore
	blogStore store.BlogStore

	authService *auth.Service
	blogService service.BlogService
	userService service.UserService
}

// newApplication opens the configured store and builds every service on top
// of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.authService, err = auth.NewService(app.userStore, jwtService, auth.NewBcryptVerifier(), logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.blogService, err = service.NewBlogService(app.blogStore, app.userStore, cfg.Blogs.UpdatePolicy, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create blog service: %w", err)
	}

	app.userService, err = service.NewUserService(
		app.userStore,
		app.blogStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		return
	}
	app.db = nil
	app.logger.Info("Database connection closed")
}
