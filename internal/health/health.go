// Package health reports service and document store liveness.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"booklibrary/internal/httpx"
	"booklibrary/internal/metrics"
)

type Status string

const (
	StatusUp         Status = "UP"
	StatusNoDatabase Status = "UP / No Database"
	StatusDegraded   Status = "DEGRADED"
)

const defaultTimeout = 500 * time.Millisecond

// Prober is the part of the store handle the reporter needs.
type Prober interface {
	Connected() bool
	Ping(ctx context.Context) error
}

type Report struct {
	Status Status `json:"status"`
}

// Reporter re-probes the store on every call instead of trusting the startup snapshot.
type Reporter struct {
	prober  Prober
	timeout time.Duration
}

func NewReporter(prober Prober, timeout time.Duration) *Reporter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Reporter{prober: prober, timeout: timeout}
}

func (r *Reporter) Report(ctx context.Context) Report {
	if !r.prober.Connected() {
		metrics.SetStoreUp(false)
		return Report{Status: StatusNoDatabase}
	}

	pingCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.prober.Ping(pingCtx); err != nil {
		slog.Warn("store probe failed", "error", err)
		metrics.SetStoreUp(false)
		return Report{Status: StatusDegraded}
	}
	metrics.SetStoreUp(true)
	return Report{Status: StatusUp}
}

// ServeHTTP handles GET /health
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} Report
// @Failure 503 {object} Report
// @Router /health [get]
func (r *Reporter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	report := r.Report(req.Context())
	status := http.StatusOK
	if report.Status == StatusDegraded {
		status = http.StatusServiceUnavailable
	}
	httpx.JSON(w, status, report)
}

// Ready handles GET /readyz
func (r *Reporter) Ready(w http.ResponseWriter, req *http.Request) {
	if r.Report(req.Context()).Status != StatusUp {
		http.Error(w, "db not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Live handles GET /healthz
func Live(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
