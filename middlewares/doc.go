// Package middlewares provides the HTTP middleware of the blog.
//
//   - Recover turns panics into *PanicError and logs the stack.
//   - RequestID assigns an id per request; RequestIDExtractor adds it to logs.
//   - RequestLogger logs method, path, status and duration.
//   - Metrics records Prometheus request counters by route pattern.
//   - Authenticate resolves the session cookie to the signed-in user;
//     RequireUser and RequireAdmin guard routes on that result.
//
// Recommended order:
//
//	awesome.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.RequestLogger(),
//	    middlewares.Metrics(),
//	    middlewares.Recover(),
//	    middlewares.Authenticate(codec, cfg.Session.CookieName),
//	)
//
// RequestID goes first so every later log line carries request_id when the
// logger is built with RequestIDExtractor:
//
//	log := logger.New(logger.Options{}, middlewares.RequestIDExtractor())
package middlewares
