// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.Live())
//	r.Get("/health/ready", health.Ready(health.Checks{
//	    "db":    db.Healthcheck(pool),
//	    "redis": redis.Healthcheck(client),
//	}))
//
// Probes answer plain "OK" / "Service Unavailable"; send Accept:
// application/json or ?format=json for a per-check report.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aileon/awesome/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Checks maps a dependency name to its probe.
type Checks map[string]func(context.Context) error

// Report is the JSON body of a probe.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Option configures Ready.
type Option func(*readiness)

type readiness struct {
	logger  *slog.Logger
	timeout time.Duration
}

// WithTimeout bounds the total time spent on checks. Default 5s.
func WithTimeout(d time.Duration) Option {
	return func(r *readiness) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger logs failing checks.
func WithLogger(l *slog.Logger) Option {
	return func(r *readiness) {
		if l != nil {
			r.logger = l
		}
	}
}

// Live always reports healthy.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r, http.StatusOK, Report{Status: StatusHealthy})
	}
}

// Ready runs every check concurrently and reports 503 if any fails.
func Ready(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := &readiness{logger: logger.NewNope(), timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		report := Run(r.Context(), checks, cfg.timeout, cfg.logger)
		status := http.StatusOK
		if report.Status != StatusHealthy {
			status = http.StatusServiceUnavailable
		}
		write(w, r, status, report)
	}
}

// Run executes checks under a shared timeout.
func Run(ctx context.Context, checks Checks, timeout time.Duration, log *slog.Logger) Report {
	report := Report{Status: StatusHealthy, Checks: make(map[string]string, len(checks))}
	if len(checks) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for name, check := range checks {
		g.Go(func() error {
			result := StatusHealthy
			if err := check(gctx); err != nil {
				result = err.Error()
				log.WarnContext(ctx, "health check failed", slog.String("check", name), slog.Any("error", err))
			}
			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = result
			if result != StatusHealthy {
				report.Status = StatusUnhealthy
			}
			return nil
		})
	}
	_ = g.Wait()
	return report
}

func write(w http.ResponseWriter, r *http.Request, status int, report Report) {
	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if status == http.StatusOK {
		_, _ = w.Write([]byte("OK"))
		return
	}
	_, _ = w.Write([]byte("Service Unavailable"))
}
