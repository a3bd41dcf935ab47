package orm_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aileon/awesome/pkg/db"
	"github.com/aileon/awesome/pkg/orm"
)

type note struct {
	ID      string
	Title   string
	Body    string
	Pinned  bool
	Score   float64
	Created float64
}

func (n *note) Value(field string) any {
	switch field {
	case "id":
		return orm.OrNil(n.ID)
	case "title":
		return n.Title
	case "body":
		return n.Body
	case "pinned":
		return n.Pinned
	case "score":
		return n.Score
	case "created_at":
		return orm.OrNil(n.Created)
	}
	return nil
}

func (n *note) SetValue(field string, v any) error {
	var ok bool
	switch field {
	case "id":
		n.ID, ok = v.(string)
	case "title":
		n.Title, ok = v.(string)
	case "body":
		n.Body, ok = v.(string)
	case "pinned":
		n.Pinned, ok = v.(bool)
	case "score":
		n.Score, ok = v.(float64)
	case "created_at":
		n.Created, ok = v.(float64)
	default:
		return fmt.Errorf("%w: %s", orm.ErrUnknownField, field)
	}
	if !ok {
		return fmt.Errorf("%w: %s=%T", orm.ErrType, field, v)
	}
	return nil
}

var idSeq atomic.Int64

func notesSchema(t *testing.T) *orm.Schema {
	t.Helper()
	return orm.MustSchema("notes",
		orm.String("id", "varchar(50)").Key().Default(func() any {
			return fmt.Sprintf("n%03d", idSeq.Add(1))
		}),
		orm.String("title", "varchar(50)"),
		orm.Text("body"),
		orm.Bool("pinned"),
		orm.Float("score"),
		orm.Float("created_at").Default(func() any { return 1700000000.5 }),
	)
}

// recorder is an Executor that records statements instead of running them.
type recorder struct {
	rows     []db.Row
	queries  []string
	args     [][]any
	affected int64
}

func (r *recorder) Select(_ context.Context, query string, args []any, _ int) ([]db.Row, error) {
	r.queries = append(r.queries, query)
	r.args = append(r.args, args)
	return r.rows, nil
}

func (r *recorder) Execute(_ context.Context, query string, args []any, _ ...db.ExecOption) (int64, error) {
	r.queries = append(r.queries, query)
	r.args = append(r.args, args)
	return r.affected, nil
}

func (r *recorder) Transact(_ context.Context, fn func(db.Executor) error) error {
	return fn(r)
}

func TestNewSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		table  string
		fields []orm.Field
		err    error
	}{
		{
			name:   "no primary key",
			table:  "t",
			fields: []orm.Field{orm.String("a", "varchar(5)")},
			err:    orm.ErrNoPrimaryKey,
		},
		{
			name:   "two primary keys",
			table:  "t",
			fields: []orm.Field{orm.String("a", "varchar(5)").Key(), orm.String("b", "varchar(5)").Key()},
			err:    orm.ErrDuplicatePrimaryKey,
		},
		{
			name:   "duplicate field",
			table:  "t",
			fields: []orm.Field{orm.String("a", "varchar(5)").Key(), orm.Text("a")},
			err:    orm.ErrDuplicateField,
		},
		{
			name:   "bad table name",
			table:  "t; drop",
			fields: []orm.Field{orm.String("a", "varchar(5)").Key()},
			err:    orm.ErrInvalidIdentifier,
		},
		{
			name:   "bad field name",
			table:  "t",
			fields: []orm.Field{orm.String("A-b", "varchar(5)").Key()},
			err:    orm.ErrInvalidIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := orm.NewSchema(tt.table, tt.fields...)
			require.ErrorIs(t, err, tt.err)
			require.Panics(t, func() { orm.MustSchema(tt.table, tt.fields...) })
		})
	}

	t.Run("statements", func(t *testing.T) {
		t.Parallel()

		s := orm.MustSchema("users",
			orm.String("email", "varchar(50)"),
			orm.String("id", "varchar(50)").Key(),
			orm.Bool("admin"),
		)
		assert.Equal(t, "select id, email, admin from users", s.SelectSQL())
		assert.Equal(t, "insert into users (email, admin, id) values (?, ?, ?)", s.InsertSQL())
		assert.Equal(t, "update users set email=?, admin=? where id=?", s.UpdateSQL())
		assert.Equal(t, "delete from users where id=?", s.DeleteSQL())
		assert.Equal(t, "id", s.PrimaryKey().Name)
		assert.Len(t, s.NonKeyFields(), 2)
	})
}

func TestTable_FindAllLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := notesSchema(t)

	t.Run("count", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		_, err := orm.NewTable[note](s, rec).FindAll(ctx, orm.Query{Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, s.SelectSQL()+" limit ?", rec.queries[0])
		assert.Equal(t, []any{5}, rec.args[0])
	})

	t.Run("offset and count", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		_, err := orm.NewTable[note](s, rec).FindAll(ctx, orm.Query{
			Where:   "pinned=?",
			Args:    []any{true},
			OrderBy: "created_at desc",
			Limit:   [2]int{10, 5},
		})
		require.NoError(t, err)
		assert.Equal(t, s.SelectSQL()+" where pinned=? order by created_at desc limit ?, ?", rec.queries[0])
		assert.Equal(t, []any{true, 10, 5}, rec.args[0])
	})

	t.Run("other shapes fail", func(t *testing.T) {
		t.Parallel()

		for _, limit := range []any{"5", 5.0, []int{1, 2}, [3]int{}} {
			rec := &recorder{}
			_, err := orm.NewTable[note](s, rec).FindAll(ctx, orm.Query{Limit: limit})
			require.ErrorIs(t, err, orm.ErrInvalidArgument, "limit %v", limit)
			assert.Empty(t, rec.queries)
		}
	})
}

func TestTable_Anomaly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var reported []string
	rec := &recorder{affected: 0}
	table := orm.NewTable[note](notesSchema(t), rec, orm.WithAnomalyHook(func(tbl, op string, n int64) {
		reported = append(reported, fmt.Sprintf("%s:%s:%d", tbl, op, n))
	}))

	n := &note{ID: "x"}
	require.NoError(t, table.Update(ctx, n))
	require.NoError(t, table.Remove(ctx, n))
	assert.Equal(t, []string{"notes:update:0", "notes:delete:0"}, reported)

	require.ErrorIs(t, table.Update(ctx, &note{}), orm.ErrMissingValue)
	require.ErrorIs(t, table.Remove(ctx, &note{}), orm.ErrMissingValue)
}

func TestTable_SaveKeepsExplicitZeroValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := orm.MustSchema("notes",
		orm.String("id", "varchar(50)").Key(),
		orm.String("title", "varchar(50)").Default("untitled"),
		orm.Text("body"),
		orm.Bool("pinned").Default(true),
		orm.Float("score"),
		orm.Float("created_at").Default(func() any { return 1700000000.5 }),
	)
	rec := &recorder{affected: 1}
	table := orm.NewTable[note](s, rec)

	n := &note{ID: "n1", Title: "", Pinned: false}
	require.NoError(t, table.Save(ctx, n))

	require.Len(t, rec.args, 1)
	assert.Equal(t, []any{"", "", false, 0.0, 1700000000.5, "n1"}, rec.args[0])
	assert.Equal(t, "", n.Title)
	assert.False(t, n.Pinned)
	assert.Equal(t, 1700000000.5, n.Created, "nil value takes the default")
}

func TestOrNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, orm.OrNil(""))
	assert.Nil(t, orm.OrNil(0.0))
	assert.Equal(t, "x", orm.OrNil("x"))
	assert.Equal(t, 1.5, orm.OrNil(1.5))
}

func openSQLite(t *testing.T, s *orm.Schema) *db.Pool {
	t.Helper()

	ctx := context.Background()
	pool, err := db.Open(ctx, db.Config{Driver: "sqlite"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	_, err = pool.Execute(ctx, s.CreateTableSQL(), nil)
	require.NoError(t, err)
	return pool
}

func TestTable_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := notesSchema(t)
	table := orm.NewTable[note](s, openSQLite(t, s))

	saved := &note{Title: "hello", Body: "world", Pinned: true, Score: 2.5}
	require.NoError(t, table.Save(ctx, saved))
	require.NotEmpty(t, saved.ID, "default id is written back")
	assert.Equal(t, 1700000000.5, saved.Created)

	found, err := table.Find(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *saved, *found)

	missing, err := table.Find(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	found.Title = "changed"
	found.Pinned = false
	require.NoError(t, table.Update(ctx, found))
	again, err := table.Find(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", again.Title)
	assert.False(t, again.Pinned)

	require.NoError(t, table.Save(ctx, &note{ID: "zzz", Title: "second", Created: 1}))

	count, err := table.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	num, err := table.FindNumber(ctx, "max(score)", "title=?", "changed")
	require.NoError(t, err)
	assert.EqualValues(t, 2.5, num)

	all, err := table.FindAll(ctx, orm.Query{OrderBy: "created_at desc"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, saved.ID, all[0].ID)

	page, err := table.FindAll(ctx, orm.Query{OrderBy: "created_at desc", Limit: [2]int{1, 1}})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "zzz", page[0].ID)

	require.NoError(t, table.Remove(ctx, again))
	count, err = table.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTable_Transaction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := notesSchema(t)
	pool := openSQLite(t, s)
	table := orm.NewTable[note](s, pool)

	err := pool.Transact(ctx, func(ex db.Executor) error {
		if err := table.With(ex).Save(ctx, &note{ID: "tx1", Title: "a"}); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.EqualError(t, err, "abort")

	n, err := table.Find(ctx, "tx1")
	require.NoError(t, err)
	assert.Nil(t, n, "rolled back")
}
