// Package main is the entry point for the CruisePress server.
// It loads configuration, connects to services, sets up routing, and starts
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

	"cruisepress/internal/blocks"
	"cruisepress/internal/cache"
	"cruisepress/internal/config"
	"cruisepress/internal/cssresolver"
	"cruisepress/internal/csssync"
	"cruisepress/internal/database"
	"cruisepress/internal/handlers"
	"cruisepress/internal/router"
	"cruisepress/internal/scraper"
	"cruisepress/internal/storage"
	"cruisepress/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
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
		"origin", cfg.OriginBaseURL,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (Redis-compatible page cache). Optional: the app
	// serves pages without it, just slower.
	var pageCache *cache.PageCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, page caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		pageCache = cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)
	}

	// Initialize data stores.
	settingStore := store.NewSiteSettingStore(db)
	versionStore := store.NewCSSVersionStore(db)
	templateStore := store.NewTemplateStore(db)
	postStore := store.NewPostStore(db)
	mediaStore := store.NewMediaStore(db)

	// Connect to S3-compatible object storage (optional — the app serves
	// origin-hosted CSS without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — css sync and media uploads disabled")
	}

	// Core pipelines: sync, resolver, scraper, block renderer. The syncer
	// needs object storage; without it the sync endpoints answer 503.
	var syncer *csssync.Syncer
	if storageClient != nil {
		syncer = csssync.New(versionStore, storageClient, nil, cfg.ScraperUserAgent)
	}
	resolver := cssresolver.New(settingStore, versionStore, cfg.CDNBaseURL(), nil)
	pageScraper := scraper.New(templateStore, nil, cfg.ScraperUserAgent, cfg.OriginBaseURL, cfg.CDNBaseURL())
	blockRenderer := blocks.NewRenderer(cfg.CDNBaseURL())

	// Create handler groups with their dependencies.
	cssHandler := handlers.NewCSS(storageClient)
	syncHandler := handlers.NewSync(syncer, settingStore, versionStore, resolver, pageCache)
	templateHandler := handlers.NewTemplates(pageScraper, templateStore, pageCache)
	mediaHandler := handlers.NewMedia(storageClient, mediaStore)
	publicHandler := handlers.NewPublic(postStore, pageScraper, resolver, blockRenderer, pageCache, cfg.OriginBaseURL)

	// Set up the Chi router with all middleware and routes.
	r := router.New(cssHandler, syncHandler, templateHandler, mediaHandler, publicHandler)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate sync runs that fetch several origin stylesheets.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
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
