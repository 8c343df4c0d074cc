// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/activity-signup/internal/config"
	"github.com/Shivanand-hulikatti/activity-signup/internal/database"
	"github.com/Shivanand-hulikatti/activity-signup/internal/handler"
	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
	"github.com/Shivanand-hulikatti/activity-signup/internal/repository"
	"github.com/Shivanand-hulikatti/activity-signup/internal/seed"
	"github.com/Shivanand-hulikatti/activity-signup/internal/service"
	"github.com/Shivanand-hulikatti/activity-signup/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err := run(cfg, logger); err != nil {
		logger.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	// ── 1. Load the seed catalog ─────────────────────────────────────────
	catalog, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}
	logger.Info("seed catalog loaded", "activities", len(catalog), "file", cfg.SeedFile)

	// ── 2. Open the store ────────────────────────────────────────────────
	store, closeStore, err := openStore(ctx, cfg, catalog, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// ── 3. Wire up layers ────────────────────────────────────────────────
	svc := service.NewActivityService(store, service.Options{EnforceCapacity: cfg.EnforceCapacity})
	h := handler.NewActivityHandler(svc, logger)
	router := handler.NewRouter(h, web.Static(), logger)

	// ── 4. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", "http://localhost:"+cfg.Port,
			"store", cfg.Store, "enforce_capacity", cfg.EnforceCapacity)
		serverErrors <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// openStore returns the configured store seeded with catalog, plus a func
// releasing its resources.
func openStore(ctx context.Context, cfg config.Config, catalog model.Catalog, logger *slog.Logger) (repository.ActivityStore, func(), error) {
	if cfg.Store != config.StorePostgres {
		return repository.NewMemoryStore(catalog), func() {}, nil
	}

	pool, err := database.NewPool(ctx, cfg.DB, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	logger.Info("connected to PostgreSQL", "host", cfg.DB.Host, "db", cfg.DB.DBName)

	if err := database.Migrate(cfg.DB, logger); err != nil {
		pool.Close()
		return nil, nil, err
	}

	store := repository.NewPostgresStore(pool)
	inserted, err := store.Seed(ctx, catalog)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("seed database: %w", err)
	}
	logger.Info("database seeded", "new_activities", inserted)

	return store, pool.Close, nil
}

// newLogger builds a slog.Logger for the given level and format
// ("json" or anything else for text).
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
