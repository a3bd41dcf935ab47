// Package logger builds the application's slog loggers.
//
// Every logger produced here is wrapped in a [LogHandlerDecorator] that runs
// a set of [ContextExtractor] functions on each record, so request-scoped
// values such as the request id end up on every line logged with a request
// context:
//
//	log := logger.New(logger.Options{Level: slog.LevelDebug}, middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "blog created", slog.String("blog_id", id))
//
// [NewWithSentry] fans records out to stdout and to Sentry: errors become
// Sentry events, warnings and errors are kept as Sentry logs. An empty DSN
// falls back to stdout only, so the same wiring runs locally and in
// production.
package logger
