// Package api assembles the HTTP surface of the library service.
package api

import (
	"log/slog"
	"net/http"

	"booklibrary/internal/book"
	"booklibrary/internal/health"
	"booklibrary/internal/httpx"
	"booklibrary/internal/metrics"
	"booklibrary/internal/store"
)

type Options struct {
	MaxBodyBytes   int64
	AllowedOrigins []string
	EnableHSTS     bool
	Logger         *slog.Logger
	// nil disables rate limiting of the write endpoint
	CreateLimiter *httpx.RateLimitMiddleware
}

// NewRouter wires the book endpoints, health probes and metrics onto one handler.
func NewRouter(handle *store.Handle, books *book.HTTPHandler, reporter *health.Reporter, opts Options) http.Handler {
	router := http.NewServeMux()

	router.Handle("GET /{$}", indexHandler(handle))
	router.Handle("GET /health", reporter)
	router.HandleFunc("GET /healthz", health.Live)
	router.HandleFunc("GET /readyz", reporter.Ready)
	router.Handle("GET /metrics", metrics.Handler())

	router.HandleFunc("GET /api/v1/getall", books.GetAll)
	router.HandleFunc("GET /api/v1/get_isbn", books.GetByISBN)

	var create http.Handler = http.HandlerFunc(books.Create)
	if opts.CreateLimiter != nil {
		create = opts.CreateLimiter.Middleware(create)
	}
	router.Handle("PUT /api/v1/create", create)

	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware,
		httpx.AccessLogMiddleware(opts.Logger),
		httpx.SecurityHeadersMiddleware(opts.EnableHSTS),
		httpx.CORSMiddleware(opts.AllowedOrigins),
		httpx.RequestSizeLimitMiddleware(maxBody),
	)
}
