// Package router sets up all HTTP routes and middleware chains for the
// ContentHub API. Route groups carry their own auth and role requirements.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"

	"contenthub/internal/auth"
	"contenthub/internal/handlers"
	"contenthub/internal/middleware"
	"contenthub/internal/models"
)

// Deps bundles everything the router needs wired in.
type Deps struct {
	Tokens    *auth.Manager
	Limiter   *middleware.RateLimiter
	UploadDir string
	ClientURL string

	Auth       *handlers.Auth
	Posts      *handlers.Posts
	Categories *handlers.Categories
	Media      *handlers.Media
	Users      *handlers.Users
	Dashboard  *handlers.Dashboard
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(d.Tokens)

	r.Route("/api", func(r chi.Router) {
		// Health check: no auth, no rate limit.
		r.Get("/health", healthHandler)

		// Auth endpoints are rate limited to slow down credential stuffing.
		r.Route("/auth", func(r chi.Router) {
			r.Use(d.Limiter.Middleware)

			r.Post("/login", d.Auth.Login)
			r.Post("/register", d.Auth.Register)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/me", d.Auth.Me)
				r.Put("/profile", d.Auth.UpdateProfile)
			})
		})

		// Posts
		r.Route("/posts", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", d.Posts.List)
			r.Post("/", d.Posts.Create)
			r.Get("/{id}", d.Posts.Get)
			r.Put("/{id}", d.Posts.Update)
			r.Delete("/{id}", d.Posts.Delete)
		})

		// Category writes are restricted by role.
		r.Route("/categories", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", d.Categories.List)
			r.Get("/{id}", d.Categories.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleEditor))
				r.Post("/", d.Categories.Create)
				r.Put("/{id}", d.Categories.Update)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Delete("/{id}", d.Categories.Delete)
			})
		})

		// Media library
		r.Route("/media", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", d.Media.List)
			r.Post("/upload", d.Media.Upload)
			r.Delete("/{id}", d.Media.Delete)
		})

		// User management is admin only.
		r.Route("/users", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/", d.Users.List)
			r.Post("/", d.Users.Create)
			r.Get("/{id}", d.Users.Get)
			r.Put("/{id}", d.Users.Update)
			r.Delete("/{id}", d.Users.Delete)
		})

		// Dashboard
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/stats", d.Dashboard.Stats)
		})
	})

	// Uploaded files are served directly from disk.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir))))

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
