// Package db owns the process-wide connection pool and the query executor
// that every persistence component goes through.
//
// Statements are written once with positional "?" placeholders and are
// rebound to the driver's own syntax by the pool's [Dialect] right before
// execution, so callers never embed driver-specific SQL. Three dialects are
// supported: PostgreSQL (pgx pool bridged to database/sql), MySQL and SQLite
// (pure Go driver, used for local runs and tests).
//
// # Usage
//
//	pool, err := db.Open(ctx, cfg, db.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, migrations.FS, log); err != nil {
//		return err
//	}
//
//	rows, err := pool.Select(ctx, "select id, name from blogs where user_id=?", []any{uid}, 0)
//
// # Reads and writes
//
// [Pool.Select] checks a connection out of the pool for the duration of one
// statement and always returns it, including on failure. [Pool.Execute]
// returns the affected-row count; with [InTransaction] the statement runs in
// its own transaction that is rolled back on any failure. [Pool.Transact]
// scopes several statements into one transaction.
//
// # Health checks and shutdown
//
// [Healthcheck] and [Shutdown] return closures shaped for the readiness probe
// and the server's shutdown hooks.
package db
