package models

import (
	"context"

	"github.com/aileon/awesome/pkg/db"
	"github.com/aileon/awesome/pkg/orm"
)

// Store groups the three tables over one executor.
type Store struct {
	Users    *orm.Table[User, *User]
	Blogs    *orm.Table[Blog, *Blog]
	Comments *orm.Table[Comment, *Comment]

	ex db.Executor
}

// NewStore binds every table to ex.
func NewStore(ex db.Executor, opts ...orm.TableOption) *Store {
	return &Store{
		Users:    orm.NewTable[User](Users, ex, opts...),
		Blogs:    orm.NewTable[Blog](Blogs, ex, opts...),
		Comments: orm.NewTable[Comment](Comments, ex, opts...),
		ex:       ex,
	}
}

// With returns a store bound to another executor, such as a transaction.
func (s *Store) With(ex db.Executor) *Store {
	return &Store{
		Users:    s.Users.With(ex),
		Blogs:    s.Blogs.With(ex),
		Comments: s.Comments.With(ex),
		ex:       ex,
	}
}

// Transact runs fn with a store bound to a single transaction.
func (s *Store) Transact(ctx context.Context, fn func(tx *Store) error) error {
	return s.ex.Transact(ctx, func(ex db.Executor) error {
		return fn(s.With(ex))
	})
}

// LookupUser resolves session subjects.
func (s *Store) LookupUser(ctx context.Context, id string) (*User, bool, error) {
	u, err := s.Users.Find(ctx, id)
	if err != nil || u == nil {
		return nil, false, err
	}
	return u, true, nil
}

// UserByEmail returns the account registered with email, or nil.
func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	users, err := s.Users.FindAll(ctx, orm.Query{Where: "email=?", Args: []any{email}, Limit: 1})
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return users[0], nil
}
