// Package main is the entry point for the ContentHub API server.
// It loads configuration, opens the database, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"contenthub/internal/auth"
	"contenthub/internal/cache"
	"contenthub/internal/config"
	"contenthub/internal/database"
	"contenthub/internal/handlers"
	"contenthub/internal/middleware"
	"contenthub/internal/router"
	"contenthub/internal/storage"
	"contenthub/internal/store"
)

func main() {
	// A .env file is a convenience for local development only.
	_ = godotenv.Load()

	// Structured logger: text output, debug level.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"db", cfg.DBPath,
	)

	// Open the SQLite database.
	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if users already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey when configured; the rate limiter falls back to its
	// in-memory window without it.
	var valkeyClient *redis.Client
	if cfg.ValkeyHost != "" {
		valkeyClient, err = cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
	} else {
		slog.Info("valkey not configured, rate limiting is per-process")
	}

	// Local file storage for media uploads.
	files, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		slog.Error("failed to initialize upload storage", "error", err)
		os.Exit(1)
	}

	// JWT token manager.
	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		slog.Error("failed to initialize token manager", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	postStore := store.NewPostStore(db)
	mediaStore := store.NewMediaStore(db)
	dashboardStore := store.NewDashboardStore(db)

	// Surface error details in responses outside production.
	handlers.Debug = cfg.IsDev()

	// Rate limit auth endpoints: 100 requests per 15 minutes per client IP.
	limiter := middleware.NewRateLimiter(100, 15*time.Minute, valkeyClient)
	defer limiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Tokens:    tokens,
		Limiter:   limiter,
		UploadDir: files.Dir(),
		ClientURL: cfg.ClientURL,

		Auth:       handlers.NewAuth(userStore, tokens),
		Posts:      handlers.NewPosts(postStore),
		Categories: handlers.NewCategories(categoryStore),
		Media:      handlers.NewMedia(mediaStore, files),
		Users:      handlers.NewUsers(userStore),
		Dashboard:  handlers.NewDashboard(dashboardStore),
	})

	// Create the HTTP server with sensible timeouts. The write timeout
	// leaves headroom for media uploads on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
