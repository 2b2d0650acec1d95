// Package main is the entry point for the MediaCMS API server.
// It loads configuration, wires the lazy database handle and session store,
// sets up routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mediacms/internal/auth"
	"mediacms/internal/cache"
	"mediacms/internal/config"
	"mediacms/internal/database"
	"mediacms/internal/handlers"
	"mediacms/internal/router"
	"mediacms/internal/session"
	"mediacms/internal/storage"
	"mediacms/internal/store"
)

func main() {
	// Optional .env file for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	// Structured logger — text output, debug level.
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
	)

	// Lazy database handle: the first request that needs the database
	// establishes the pool, runs pending migrations and (in development)
	// seeds sample data. Concurrent first users share a single attempt.
	conn := database.NewLazy(cfg.DSN(), func(db *sql.DB) error {
		if err := database.Migrate(db); err != nil {
			return err
		}
		if cfg.IsDev() {
			return database.Seed(db)
		}
		return nil
	})
	defer conn.Close()

	// Warm the handle eagerly so a healthy deployment fails fast on bad
	// database config. A failure here is logged, not fatal — the API keeps
	// serving and retries on demand.
	if _, err := conn.DB(); err != nil {
		slog.Warn("database not reachable at startup, will retry on demand", "error", err)
	}

	// Connect to Valkey (Redis-compatible session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Credential validator for the single administrator account.
	validator := auth.New(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.AdminTOTPSecret)

	// Connect to S3-compatible object storage (optional — app works without it).
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
		slog.Warn("s3 storage not configured — file uploads disabled")
	}

	// Create handler groups with their dependencies.
	contentHandlers := handlers.NewContent(store.NewContentStore(conn), cfg.IsDev())
	authHandlers := handlers.NewAuth(validator, sessionStore, cfg.AdminUsername, cfg.IsDev())
	uploadHandlers := handlers.NewUpload(storageClient, cfg.IsDev())

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, contentHandlers, authHandlers, uploadHandlers)

	// Create the HTTP server with sensible timeouts. ReadTimeout covers
	// multipart uploads, so it is more generous than a pure JSON API needs.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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
