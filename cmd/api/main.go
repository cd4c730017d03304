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

	"booklibrary/internal/api"
	"booklibrary/internal/book"
	"booklibrary/internal/config"
	"booklibrary/internal/health"
	"booklibrary/internal/httpx"
	"booklibrary/internal/metrics"
	"booklibrary/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle := openStore(ctx, cfg)
	defer func() { _ = handle.Close() }()

	repo := book.NewDocumentRepo(handle, cfg.DBTimeout)
	books := book.NewHTTPHandler(book.NewService(repo))
	reporter := health.NewReporter(handle, cfg.HealthTimeout)

	createLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer createLimiter.Stop()

	router := api.NewRouter(handle, books, reporter, api.Options{
		MaxBodyBytes:   cfg.MaxBodyBytes,
		AllowedOrigins: cfg.AllowedOrigins,
		EnableHSTS:     cfg.EnableHSTS,
		Logger:         logger,
		CreateLimiter:  createLimiter,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr, "driver", cfg.DBDriver, "store_connected", handle.Connected())
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}
}

// openStore connects once. A failure is not fatal: the service keeps serving
// and reports the missing database on every endpoint.
func openStore(ctx context.Context, cfg *config.Config) *store.Handle {
	s, err := store.Open(ctx, store.Options{
		Driver:         cfg.DBDriver,
		DSN:            cfg.DBDSN,
		Path:           cfg.PebblePath,
		ConnectTimeout: cfg.DBConnectTimeout,
	})
	if err != nil {
		slog.Error("Connection Error, Database couldnt be reached",
			"driver", cfg.DBDriver, "dsn", store.RedactDSN(cfg.DBDSN), "error", err)
		metrics.SetStoreUp(false)
		return store.Disconnected(err)
	}

	if err := store.EnsureDesign(ctx, s); err != nil {
		slog.Warn("could not ensure design document", "error", err)
	}
	slog.Info("database connection OK", "driver", cfg.DBDriver)
	metrics.SetStoreUp(true)
	return store.Connected(s)
}
