package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relay-backend/internal/config"
	"relay-backend/internal/database"
	"relay-backend/internal/handlers"
	"relay-backend/internal/router"
	"relay-backend/internal/services"
)

const shutdownDrain = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("✗ Chat relay stopped", "err", err)
		stop()
		os.Exit(1)
	}
}

// run owns every resource it opens; returning unwinds them in reverse order.
func run(ctx context.Context) error {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("🚀 Starting chat relay", "env", cfg.Env, "backend", cfg.Backend, "model", cfg.ModelName)
	logger.Info("✓ Environment variables loaded")

	var checks []handlers.HealthCheck

	// ──── Step 2: Optional PostgreSQL Connection Pool ────
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("PostgreSQL connection failed: %w", err)
		}
		defer pool.Close()
		checks = append(checks, handlers.HealthCheck{Name: "postgres", Check: database.PostgresCheck(pool)})
		logger.Info("✓ PostgreSQL connected")
	}

	// ──── Step 3: Optional Redis Client ────
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("Redis connection failed: %w", err)
		}
		defer rdb.Close()
		checks = append(checks, handlers.HealthCheck{Name: "redis", Check: database.RedisCheck(rdb)})
		logger.Info("✓ Redis connected")
	}

	// ──── Step 4: Initialize Model Client ────
	generator, err := services.NewGenerator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("model client initialization failed: %w", err)
	}
	defer generator.Close()
	logger.Info("✓ Model client initialized", "backend", cfg.Backend, "project", cfg.ProjectID, "location", cfg.Location)

	relayService, err := services.NewRelayService(
		generator,
		logger,
		cfg.UpstreamTimeout,
		services.ParseEmptyTextPolicy(cfg.EmptyTextPolicy),
	)
	if err != nil {
		return fmt.Errorf("relay service initialization failed: %w", err)
	}

	// ──── Step 5: Start HTTP Server ────
	r := router.New(
		handlers.NewChatHandler(relayService, logger),
		handlers.NewHealthHandler(checks...),
		cfg.FrontendURL,
	)

	server := &http.Server{
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if cfg.UpstreamTimeout == 0 {
		server.WriteTimeout = 0
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
	}

	logger.Info(fmt.Sprintf("✓ Chat relay ready on http://localhost:%s", cfg.Port))
	logger.Info(fmt.Sprintf("  Chat: POST http://localhost:%s/chat", cfg.Port))
	logger.Info(fmt.Sprintf("  Form: http://localhost:%s/app", cfg.Port))

	return serve(ctx, server, ln, shutdownDrain, logger)
}

// serve blocks until ctx is cancelled, then stops accepting connections and
// waits up to drain for in-flight requests before returning.
func serve(ctx context.Context, server *http.Server, ln net.Listener, drain time.Duration, logger *slog.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...", "drain", drain)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("✗ Graceful shutdown incomplete", "err", err)
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("✓ Shutdown complete")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
