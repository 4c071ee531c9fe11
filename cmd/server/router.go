package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/simverse/simverse-api/internal/api"
	apiMiddleware "github.com/simverse/simverse-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	authHandler := api.NewAuthHandler(app.accountService, app.jwtService)
	preferencesHandler := api.NewPreferencesHandler(app.accountService)
	lessonHandler := api.NewLessonHandler(app.lessonService)
	progressHandler := api.NewProgressHandler(app.progressService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/preferences", preferencesHandler.Get)
			r.Put("/preferences", preferencesHandler.Update)

			r.Post("/lessons", lessonHandler.Generate)
			r.Get("/history", lessonHandler.History)

			r.Get("/progress", progressHandler.List)
			r.Post("/progress/complete", progressHandler.Complete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
