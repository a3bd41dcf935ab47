package db

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"
)

// Executor issues parameterized statements written with "?" placeholders.
// Both *Pool and the executor handed to a Transact callback implement it.
type Executor interface {
	// Select runs a query and returns up to size rows (all rows when size <= 0).
	Select(ctx context.Context, query string, args []any, size int) ([]Row, error)

	// Execute runs a write statement and returns the affected-row count.
	Execute(ctx context.Context, query string, args []any, opts ...ExecOption) (int64, error)

	// Transact runs fn inside a transaction. Inside an existing transaction
	// fn joins it.
	Transact(ctx context.Context, fn func(ex Executor) error) error
}

// ExecOption tweaks a single Execute call.
type ExecOption func(*execOptions)

type execOptions struct {
	transaction bool
}

// InTransaction runs the statement in its own transaction: begin, execute,
// commit, or roll back on failure.
func InTransaction() ExecOption {
	return func(o *execOptions) {
		o.transaction = true
	}
}

// queryer is the subset of *sql.Conn and *sql.Tx the executors need.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func selectRows(ctx context.Context, q queryer, d Dialect, log *slog.Logger, query string, args []any, size int) ([]Row, error) {
	start := time.Now()
	rows, err := q.QueryContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Join(ErrQuery, err)
		}
		result = append(result, NewRow(columns, values))
		if size > 0 && len(result) >= size {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQuery, err)
	}

	log.DebugContext(ctx, "sql select",
		slog.String("query", query),
		slog.Int("args", len(args)),
		slog.Int("rows", len(result)),
		slog.Duration("took", time.Since(start)),
	)
	return result, nil
}

func execStatement(ctx context.Context, q queryer, d Dialect, log *slog.Logger, query string, args []any) (int64, error) {
	start := time.Now()
	res, err := q.ExecContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return 0, errors.Join(ErrQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrQuery, err)
	}

	log.DebugContext(ctx, "sql execute",
		slog.String("query", query),
		slog.Int("args", len(args)),
		slog.Int64("affected", affected),
		slog.Duration("took", time.Since(start)),
	)
	return affected, nil
}

// txExecutor runs statements on an open transaction.
type txExecutor struct {
	tx      *sql.Tx
	dialect Dialect
	logger  *slog.Logger
}

func (t *txExecutor) Select(ctx context.Context, query string, args []any, size int) ([]Row, error) {
	return selectRows(ctx, t.tx, t.dialect, t.logger, query, args, size)
}

func (t *txExecutor) Execute(ctx context.Context, query string, args []any, _ ...ExecOption) (int64, error) {
	return execStatement(ctx, t.tx, t.dialect, t.logger, query, args)
}

func (t *txExecutor) Transact(_ context.Context, fn func(ex Executor) error) error {
	return fn(t)
}

var (
	_ Executor = (*Pool)(nil)
	_ Executor = (*txExecutor)(nil)
)
