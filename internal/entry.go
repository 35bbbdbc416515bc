// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/ordo/internal/api"
	"github.com/starford/ordo/internal/settings"
	"github.com/starford/ordo/internal/sse"
	"github.com/starford/ordo/internal/store"
	"github.com/starford/ordo/internal/taskservice"
	"github.com/starford/ordo/internal/watch"
)

// NewStore builds the content store selected by the document config.
func NewStore(cfg *DocumentConfig) (store.Store, error) {
	switch cfg.Backend {
	case BackendWebDAV:
		return store.NewWebDAV(cfg.URL, cfg.Username, cfg.Password, cfg.Timeout()), nil
	default:
		return store.NewFile(cfg.Path)
	}
}

// NewTaskService builds the task service for the given config. Shared
// by the HTTP entrypoint and the MCP subcommand.
func NewTaskService(cfg *Config, logger *slog.Logger) (*taskservice.Service, error) {
	st, err := NewStore(&cfg.Document)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return taskservice.NewService(st, logger), nil
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("document_backend", cfg.Document.Backend),
		slog.String("settings_path", cfg.Settings.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, err := NewTaskService(cfg, logger)
	if err != nil {
		return err
	}
	settingsStore := settings.NewStore(cfg.Settings.Path)

	// SSE broker.
	broker := sse.NewBroker(500 * time.Millisecond)
	defer broker.Close()

	// Build API router.
	apiRouter := api.NewRouter(svc, settingsStore, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the document for out-of-band edits (file backend only; the
	// WebDAV backend has no change feed).
	if cfg.Document.Backend == BackendFile {
		fileStore, err := store.NewFile(cfg.Document.Path)
		if err != nil {
			return fmt.Errorf("init watcher: %w", err)
		}
		g.Go(func() error {
			if err := watch.Document(gCtx, fileStore.Path(), logger, broker.PublishDocumentChanged); err != nil {
				logger.Warn("watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
