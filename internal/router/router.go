// Package router sets up all HTTP routes and middleware chains for the
// CruisePress server. It organizes routes into public and admin groups
// with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cruisepress/internal/handlers"
	"cruisepress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(css *handlers.CSS, sync *handlers.Sync, templates *handlers.Templates, media *handlers.Media, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check — no auth, no caching.
	r.Get("/health", healthHandler)

	// CDN route — public, long-cached stylesheet serving.
	r.Get("/css/{filename}", css.Serve)

	// Admin API — rate-limited JSON endpoints for sync, scraping, media.
	adminLimiter := middleware.NewRateLimiter(60, time.Minute)
	r.Route("/admin", func(r chi.Router) {
		r.Use(adminLimiter.Middleware)

		r.Route("/css-sync", func(r chi.Router) {
			r.With(middleware.RequireCronOrAdmin).Post("/", sync.Trigger)
			r.Post("/upload", sync.Upload)
			r.Get("/status", sync.Status)
			r.Get("/history", sync.History)
			r.Get("/health", sync.Health)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Post("/refresh", templates.Refresh)
			r.Post("/clear-cache", templates.ClearCache)
			r.Get("/status", templates.Status)
		})

		r.Route("/media", func(r chi.Router) {
			r.Post("/", media.Upload)
			r.Get("/", media.List)
			r.Delete("/{id}", media.Delete)
		})
	})

	// Public routes — assembled from scraped templates and content blocks.
	r.Get("/", public.Homepage)
	r.Get("/category/{slug}", public.Category)
	r.Get("/{slug}", public.Post)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
