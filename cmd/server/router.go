package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/bloglist-api/internal/api"
	apiMiddleware "github.com/phrazzld/bloglist-api/internal/api/middleware"
	"github.com/phrazzld/bloglist-api/internal/config"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	blogHandler := api.NewBlogHandler(app.blogService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	authHandler := api.NewAuthHandler(app.authService, app.logger)

	steps := apiMiddleware.NewAuthSteps(app.authService)
	requireUser := apiMiddleware.Pipeline(api.HandleAPIError, apiMiddleware.ExtractToken, steps.RequireUser)

	// Under the open policy PUT is anonymous; a token that resolves is attached
	// but one that does not is ignored. Only the owner policy rejects it.
	updateAuth := apiMiddleware.Pipeline(api.HandleAPIError, apiMiddleware.ExtractToken, steps.OptionalUser)
	if app.config.Blogs.UpdatePolicy == config.UpdatePolicyOwner {
		updateAuth = requireUser
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		r.Get("/users", userHandler.List)
		r.Post("/users", userHandler.Register)

		r.Get("/blogs", blogHandler.List)
		r.Get("/blogs/stats", blogHandler.Stats)
		r.With(requireUser).Post("/blogs", blogHandler.Create)
		r.With(updateAuth).Put("/blogs/{id}", blogHandler.Update)
		r.With(requireUser).Delete("/blogs/{id}", blogHandler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
