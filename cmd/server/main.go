// Package main is the entrypoint for the ToolBelt-AI estimation server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dev16mehta/ToolBelt-AI/internal/api"
	"github.com/dev16mehta/ToolBelt-AI/internal/api/handler"
	mw "github.com/dev16mehta/ToolBelt-AI/internal/api/middleware"
	"github.com/dev16mehta/ToolBelt-AI/internal/cache"
	"github.com/dev16mehta/ToolBelt-AI/internal/config"
	"github.com/dev16mehta/ToolBelt-AI/internal/estimate"
	"github.com/dev16mehta/ToolBelt-AI/internal/extract"
	"github.com/dev16mehta/ToolBelt-AI/internal/model"
	"github.com/dev16mehta/ToolBelt-AI/internal/store"
	"github.com/dev16mehta/ToolBelt-AI/pkg/currency"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "extractor", cfg.Extractor.Provider, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	// 3. Run migrations
	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// 4. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 5. Load the model bundle. Artifact shape is validated once here; a
	// server that starts is a server that can predict.
	bundle, err := model.Load(cfg.Model.BundlePath)
	if err != nil {
		return fmt.Errorf("load model bundle: %w", err)
	}
	slog.Info("model bundle loaded", "version", bundle.Version, "columns", len(bundle.Columns))

	converter, err := currency.NewConverter(cfg.Model.ExchangeRate)
	if err != nil {
		return fmt.Errorf("parse exchange rate: %w", err)
	}

	// 6. Create the feature extractor
	extractor, err := extract.NewExtractor(ctx, cfg.Extractor)
	if err != nil {
		return fmt.Errorf("create extractor: %w", err)
	}
	slog.Info("extractor initialized", "provider", extractor.Name())

	// 7. Assemble the estimation service
	svc, err := estimate.New(bundle, converter, extractor, redisCache,
		cfg.Extractor.Timeout, cfg.Extractor.CacheTTL)
	if err != nil {
		return fmt.Errorf("build estimation service: %w", err)
	}

	// 8. Build router with dependencies
	pgStore := store.NewPostgresStore(pool)
	auth := mw.NewAuth(pgStore)
	rateLimit := mw.NewRateLimit(redisCache, 60)

	deps := api.Dependencies{
		Auth:      auth,
		RateLimit: rateLimit,

		HealthHandler:    handler.NewHealthHandler(pgStore, redisCache, bundle.Version),
		EstimateHandler:  handler.NewEstimateHandler(svc),
		PredictHandler:   handler.NewPredictHandler(svc),
		ModelInfoHandler: handler.NewModelInfoHandler(svc),
		CreateKeyHandler: handler.NewCreateKeyHandler(pgStore),
		ListKeysHandler:  handler.NewListKeysHandler(pgStore),
		RevokeKeyHandler: handler.NewRevokeKeyHandler(pgStore),
	}

	router := api.NewRouter(deps)

	// 9. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
