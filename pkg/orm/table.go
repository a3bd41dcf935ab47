package orm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aileon/awesome/pkg/db"
	"github.com/aileon/awesome/pkg/logger"
)

// Query narrows FindAll.
type Query struct {
	// Limit is either a row count (int) or an (offset, count) pair ([2]int).
	Limit   any
	Where   string
	OrderBy string
	Args    []any
}

// AnomalyHook observes writes whose affected-row count is not 1.
type AnomalyHook func(table, op string, affected int64)

// TableOption configures a Table.
type TableOption func(*tableOptions)

type tableOptions struct {
	logger *slog.Logger
	hook   AnomalyHook
}

// WithLogger sets the logger used for anomaly warnings.
func WithLogger(l *slog.Logger) TableOption {
	return func(o *tableOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAnomalyHook registers a callback for affected-row anomalies.
func WithAnomalyHook(h AnomalyHook) TableOption {
	return func(o *tableOptions) {
		o.hook = h
	}
}

// Table is the mapper for one record type R, whose pointer implements Record.
type Table[R any, P interface {
	*R
	Record
}] struct {
	schema *Schema
	ex     db.Executor
	opts   tableOptions
}

// NewTable binds a schema and a record type to an executor.
func NewTable[R any, P interface {
	*R
	Record
}](s *Schema, ex db.Executor, opts ...TableOption) *Table[R, P] {
	o := tableOptions{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Table[R, P]{schema: s, ex: ex, opts: o}
}

// Schema returns the table's schema.
func (t *Table[R, P]) Schema() *Schema { return t.schema }

// With returns a copy of the table bound to another executor, typically the
// one handed to a db.Executor.Transact callback.
func (t *Table[R, P]) With(ex db.Executor) *Table[R, P] {
	c := *t
	c.ex = ex
	return &c
}

// FindAll returns the records matching q, in the requested order.
func (t *Table[R, P]) FindAll(ctx context.Context, q Query) ([]*R, error) {
	var sb strings.Builder
	sb.WriteString(t.schema.selectSQL)
	args := append([]any(nil), q.Args...)

	if q.Where != "" {
		sb.WriteString(" where ")
		sb.WriteString(q.Where)
	}
	if q.OrderBy != "" {
		sb.WriteString(" order by ")
		sb.WriteString(q.OrderBy)
	}
	if q.Limit != nil {
		switch l := q.Limit.(type) {
		case int:
			sb.WriteString(" limit ?")
			args = append(args, l)
		case [2]int:
			sb.WriteString(" limit ?, ?")
			args = append(args, l[0], l[1])
		default:
			return nil, fmt.Errorf("%w: limit must be int or [2]int, got %T", ErrInvalidArgument, q.Limit)
		}
	}

	rows, err := t.ex.Select(ctx, sb.String(), args, 0)
	if err != nil {
		return nil, err
	}

	out := make([]*R, 0, len(rows))
	for _, row := range rows {
		rec, err := t.fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Find loads a record by primary key. A missing record is (nil, nil).
func (t *Table[R, P]) Find(ctx context.Context, pk any) (*R, error) {
	query := fmt.Sprintf("%s where %s=?", t.schema.selectSQL, t.schema.pk.Name)
	rows, err := t.ex.Select(ctx, query, []any{pk}, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return t.fromRow(rows[0])
}

// FindNumber evaluates a scalar select expression such as "count(id)".
// No row yields (nil, nil).
func (t *Table[R, P]) FindNumber(ctx context.Context, expr, where string, args ...any) (any, error) {
	query := fmt.Sprintf("select %s _num_ from %s", expr, t.schema.table)
	if where != "" {
		query += " where " + where
	}
	rows, err := t.ex.Select(ctx, query, args, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	v, _ := rows[0].Get("_num_")
	return v, nil
}

// Count is FindNumber("count(pk)") converted to an int.
func (t *Table[R, P]) Count(ctx context.Context, where string, args ...any) (int, error) {
	v, err := t.FindNumber(ctx, "count("+t.schema.pk.Name+")", where, args...)
	if err != nil || v == nil {
		return 0, err
	}
	n, err := normalize(KindInt, v)
	if err != nil {
		return 0, err
	}
	return int(n.(int64)), nil
}

// Save inserts rec. Fields whose Value is nil take their declared defaults,
// which are written back to rec. Explicit zero values are kept.
func (t *Table[R, P]) Save(ctx context.Context, rec P) error {
	args := make([]any, 0, len(t.schema.fields))
	for _, f := range t.schema.others {
		v, err := t.valueOrDefault(rec, f)
		if err != nil {
			return err
		}
		args = append(args, v)
	}
	pk, err := t.valueOrDefault(rec, t.schema.pk)
	if err != nil {
		return err
	}
	if missingKey(pk) {
		return fmt.Errorf("%w: %s.%s", ErrMissingValue, t.schema.table, t.schema.pk.Name)
	}
	args = append(args, pk)

	n, err := t.ex.Execute(ctx, t.schema.insertSQL, args)
	if err != nil {
		return err
	}
	t.checkAffected(ctx, "insert", n)
	return nil
}

// Update writes every non-key field of rec by primary key.
func (t *Table[R, P]) Update(ctx context.Context, rec P) error {
	pk := rec.Value(t.schema.pk.Name)
	if missingKey(pk) {
		return fmt.Errorf("%w: %s.%s", ErrMissingValue, t.schema.table, t.schema.pk.Name)
	}

	args := make([]any, 0, len(t.schema.fields))
	for _, f := range t.schema.others {
		v := rec.Value(f.Name)
		if v == nil {
			// absent fields keep the column's zero value on update
			zero, err := normalize(f.Kind, nil)
			if err != nil {
				return err
			}
			v = zero
		}
		args = append(args, v)
	}
	args = append(args, pk)

	n, err := t.ex.Execute(ctx, t.schema.updateSQL, args)
	if err != nil {
		return err
	}
	t.checkAffected(ctx, "update", n)
	return nil
}

// Remove deletes rec by primary key.
func (t *Table[R, P]) Remove(ctx context.Context, rec P) error {
	pk := rec.Value(t.schema.pk.Name)
	if missingKey(pk) {
		return fmt.Errorf("%w: %s.%s", ErrMissingValue, t.schema.table, t.schema.pk.Name)
	}

	n, err := t.ex.Execute(ctx, t.schema.deleteSQL, []any{pk})
	if err != nil {
		return err
	}
	t.checkAffected(ctx, "delete", n)
	return nil
}

func (t *Table[R, P]) valueOrDefault(rec P, f Field) (any, error) {
	v := rec.Value(f.Name)
	if v != nil || !f.HasDefault() {
		return v, nil
	}
	v = f.DefaultValue()
	if err := rec.SetValue(f.Name, v); err != nil {
		return nil, err
	}
	t.opts.logger.Debug("using default value", slog.String("table", t.schema.table), slog.String("field", f.Name))
	return v, nil
}

func (t *Table[R, P]) checkAffected(ctx context.Context, op string, n int64) {
	if n == 1 {
		return
	}
	t.opts.logger.WarnContext(ctx, "unexpected affected rows",
		slog.String("table", t.schema.table),
		slog.String("op", op),
		slog.Int64("affected", n),
	)
	if t.opts.hook != nil {
		t.opts.hook(t.schema.table, op, n)
	}
}

func (t *Table[R, P]) fromRow(row db.Row) (*R, error) {
	rec := new(R)
	p := P(rec)
	values := row.Values()
	for i, col := range row.Columns() {
		f, ok := t.schema.Field(col)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, t.schema.table, col)
		}
		v, err := normalize(f.Kind, values[i])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.schema.table, col, err)
		}
		if err := p.SetValue(col, v); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
