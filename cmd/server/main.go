package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmynk/orderlines/internal/auth"
	"github.com/mmynk/orderlines/internal/config"
	"github.com/mmynk/orderlines/internal/metrics"
	"github.com/mmynk/orderlines/internal/server"
	"github.com/mmynk/orderlines/internal/storage/sqlite"
	"github.com/mmynk/orderlines/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logging.SetupWith(cfg.LogLevel, cfg.LogFormat)
	if cfg.Dev {
		slog.Warn("Running in development mode")
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	handler := server.NewHandler(server.Options{
		Store:         store,
		Authenticator: auth.NewPasswordAuthenticator(store),
		JWTManager:    auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Metrics:       metrics.New(),
		MetricsPath:   cfg.MetricsPath,
		Logger:        slog.Default(),
	})
	srv := server.NewHTTPServer(cfg.Addr(), handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "metrics", cfg.MetricsPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			store.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}
