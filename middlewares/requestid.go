package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aileon/awesome/internal"
	"github.com/aileon/awesome/pkg/logger"
)

type requestIDKey struct{}

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	generate func() string
	trusted  []string
}

// WithRequestIDGenerator replaces the uuid generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if gen != nil {
			cfg.generate = gen
		}
	}
}

// WithTrustedHeaders lists inbound headers whose value is reused as the id,
// first match wins. Pass nothing to always generate.
func WithTrustedHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.trusted = headers
	}
}

// RequestID tags every request with an id, echoed in the X-Request-ID
// response header and available to loggers through RequestIDExtractor.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := requestIDConfig{
		generate: uuid.NewString,
		trusted:  []string{RequestIDHeader, "X-Correlation-ID"},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			var rid string
			for _, h := range cfg.trusted {
				if rid = c.Header(h); rid != "" {
					break
				}
			}
			if rid == "" {
				rid = cfg.generate()
			}

			c.Set(requestIDKey{}, rid)
			c.SetHeader(RequestIDHeader, rid)
			return next(c)
		}
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c internal.Context) string {
	rid, _ := c.Get(requestIDKey{}).(string)
	return rid
}

// RequestIDExtractor adds request_id to every record logged with a request
// context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if rid, ok := ctx.Value(requestIDKey{}).(string); ok && rid != "" {
			return slog.String("request_id", rid), true
		}
		return slog.Attr{}, false
	}
}
