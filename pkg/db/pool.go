package db

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aileon/awesome/pkg/logger"
)

// Pool is the shared connection pool. It is safe for concurrent use and is
// meant to be created once by the composition root and passed down.
type Pool struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
	closers []func()
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger used for statement tracing.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// New wraps an already opened *sql.DB.
func New(db *sql.DB, dialect Dialect, opts ...Option) *Pool {
	p := &Pool{
		db:      db,
		dialect: dialect,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DB returns the underlying *sql.DB.
func (p *Pool) DB() *sql.DB { return p.db }

// Dialect returns the pool's SQL dialect.
func (p *Pool) Dialect() Dialect { return p.dialect }

// Select checks out a connection, runs the query and returns the connection
// to the pool on every exit path.
func (p *Pool) Select(ctx context.Context, query string, args []any, size int) ([]Row, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	defer conn.Close()

	return selectRows(ctx, conn, p.dialect, p.logger, query, args, size)
}

// Execute runs a write statement. With InTransaction the statement is
// wrapped in begin/commit and rolled back on failure.
func (p *Pool) Execute(ctx context.Context, query string, args []any, opts ...ExecOption) (int64, error) {
	var o execOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.transaction {
		var affected int64
		err := p.Transact(ctx, func(ex Executor) error {
			n, err := ex.Execute(ctx, query, args)
			affected = n
			return err
		})
		return affected, err
	}

	conn, err := p.db.Conn(ctx)
	if err != nil {
		return 0, errors.Join(ErrQuery, err)
	}
	defer conn.Close()

	return execStatement(ctx, conn, p.dialect, p.logger, query, args)
}

// Transact runs fn inside a transaction. The transaction is rolled back if
// fn returns an error or panics (the panic is re-raised), and committed
// otherwise.
func (p *Pool) Transact(ctx context.Context, fn func(ex Executor) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&txExecutor{tx: tx, dialect: p.dialect, logger: p.logger}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			p.logger.ErrorContext(ctx, "transaction rollback failed", slog.Any("error", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(ErrQuery, err)
	}
	return nil
}

// Close closes the database handle and any driver pool behind it.
func (p *Pool) Close() error {
	err := p.db.Close()
	for _, fn := range p.closers {
		fn()
	}
	return err
}
