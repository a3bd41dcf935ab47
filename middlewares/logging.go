package middlewares

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aileon/awesome/internal"
	"github.com/aileon/awesome/pkg/metrics"
)

// RequestLogger logs method, path, status and duration of every request.
// Server errors log at error level, client errors at warn.
func RequestLogger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := statusOf(c, err)
			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}
			switch {
			case status >= 500:
				c.LogError("request", attrs...)
			case status >= 400:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}

// Metrics records request counts and latency by chi route pattern.
func Metrics() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			var route string
			if rctx := chi.RouteContext(c.Request().Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			metrics.ObserveRequest(c.Request().Method, route, statusOf(c, err), time.Since(start))
			return err
		}
	}
}
