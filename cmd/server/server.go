package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// shutdownTimeout bounds how long in-flight requests may take to finish.
const shutdownTimeout = 10 * time.Second

// startHTTPServer serves router until ctx is canceled or the listener fails,
// then shuts down gracefully.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(app.config.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(app.config.Server.WriteTimeoutSeconds) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			app.logger.Error("Server failed", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", slog.String("error", err.Error()))
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}
