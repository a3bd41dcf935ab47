// Package models declares the blog's tables and record types.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/aileon/awesome/pkg/id"
	"github.com/aileon/awesome/pkg/orm"
)

// MaskedPassword replaces the stored secret in every JSON rendering.
const MaskedPassword = "******"

func newID() any     { return id.New() }
func createdAt() any { return orm.Now() }

var (
	// Users holds accounts. passwd stores a bcrypt hash.
	Users = orm.MustSchema("users",
		orm.String("id", "varchar(50)").Key().Default(newID),
		orm.String("email", "varchar(50)"),
		orm.String("passwd", "varchar(100)"),
		orm.Bool("admin"),
		orm.String("name", "varchar(50)"),
		orm.String("image", "varchar(500)"),
		orm.Float("created_at").Default(createdAt),
	)

	// Blogs holds posts, denormalized with their author's name and image.
	Blogs = orm.MustSchema("blogs",
		orm.String("id", "varchar(50)").Key().Default(newID),
		orm.String("user_id", "varchar(50)"),
		orm.String("user_name", "varchar(50)"),
		orm.String("user_image", "varchar(500)"),
		orm.String("name", "varchar(50)"),
		orm.String("summary", "varchar(200)"),
		orm.Text("content"),
		orm.Float("created_at").Default(createdAt),
	)

	// Comments holds comments on blogs.
	Comments = orm.MustSchema("comments",
		orm.String("id", "varchar(50)").Key().Default(newID),
		orm.String("blog_id", "varchar(50)"),
		orm.String("user_id", "varchar(50)"),
		orm.String("user_name", "varchar(50)"),
		orm.String("user_image", "varchar(500)"),
		orm.Text("content"),
		orm.Float("created_at").Default(createdAt),
	)
)

// User is a row of users.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Passwd    string  `json:"passwd"`
	Admin     bool    `json:"admin"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	CreatedAt float64 `json:"created_at"`
}

func (u *User) SubjectID() string     { return u.ID }
func (u *User) SessionSecret() string { return u.Passwd }
func (u *User) IsAdmin() bool         { return u.Admin }

// MarshalJSON masks the password.
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	p := plain(u)
	p.Passwd = MaskedPassword
	return json.Marshal(p)
}

func (u *User) Value(field string) any {
	switch field {
	case "id":
		return orm.OrNil(u.ID)
	case "email":
		return u.Email
	case "passwd":
		return u.Passwd
	case "admin":
		return u.Admin
	case "name":
		return u.Name
	case "image":
		return u.Image
	case "created_at":
		return orm.OrNil(u.CreatedAt)
	}
	return nil
}

func (u *User) SetValue(field string, v any) error {
	switch field {
	case "id":
		return set(&u.ID, field, v)
	case "email":
		return set(&u.Email, field, v)
	case "passwd":
		return set(&u.Passwd, field, v)
	case "admin":
		return set(&u.Admin, field, v)
	case "name":
		return set(&u.Name, field, v)
	case "image":
		return set(&u.Image, field, v)
	case "created_at":
		return set(&u.CreatedAt, field, v)
	}
	return fmt.Errorf("%w: users.%s", orm.ErrUnknownField, field)
}

// Blog is a row of blogs.
type Blog struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	UserImage string  `json:"user_image"`
	Name      string  `json:"name"`
	Summary   string  `json:"summary"`
	Content   string  `json:"content"`
	CreatedAt float64 `json:"created_at"`

	// HTML is the rendered content, filled for pages only.
	HTML string `json:"-"`
}

func (b *Blog) Value(field string) any {
	switch field {
	case "id":
		return orm.OrNil(b.ID)
	case "user_id":
		return b.UserID
	case "user_name":
		return b.UserName
	case "user_image":
		return b.UserImage
	case "name":
		return b.Name
	case "summary":
		return b.Summary
	case "content":
		return b.Content
	case "created_at":
		return orm.OrNil(b.CreatedAt)
	}
	return nil
}

func (b *Blog) SetValue(field string, v any) error {
	switch field {
	case "id":
		return set(&b.ID, field, v)
	case "user_id":
		return set(&b.UserID, field, v)
	case "user_name":
		return set(&b.UserName, field, v)
	case "user_image":
		return set(&b.UserImage, field, v)
	case "name":
		return set(&b.Name, field, v)
	case "summary":
		return set(&b.Summary, field, v)
	case "content":
		return set(&b.Content, field, v)
	case "created_at":
		return set(&b.CreatedAt, field, v)
	}
	return fmt.Errorf("%w: blogs.%s", orm.ErrUnknownField, field)
}

// Comment is a row of comments.
type Comment struct {
	ID        string  `json:"id"`
	BlogID    string  `json:"blog_id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	UserImage string  `json:"user_image"`
	Content   string  `json:"content"`
	CreatedAt float64 `json:"created_at"`

	HTML string `json:"-"`
}

func (c *Comment) Value(field string) any {
	switch field {
	case "id":
		return orm.OrNil(c.ID)
	case "blog_id":
		return c.BlogID
	case "user_id":
		return c.UserID
	case "user_name":
		return c.UserName
	case "user_image":
		return c.UserImage
	case "content":
		return c.Content
	case "created_at":
		return orm.OrNil(c.CreatedAt)
	}
	return nil
}

func (c *Comment) SetValue(field string, v any) error {
	switch field {
	case "id":
		return set(&c.ID, field, v)
	case "blog_id":
		return set(&c.BlogID, field, v)
	case "user_id":
		return set(&c.UserID, field, v)
	case "user_name":
		return set(&c.UserName, field, v)
	case "user_image":
		return set(&c.UserImage, field, v)
	case "content":
		return set(&c.Content, field, v)
	case "created_at":
		return set(&c.CreatedAt, field, v)
	}
	return fmt.Errorf("%w: comments.%s", orm.ErrUnknownField, field)
}

func set[T any](dst *T, field string, v any) error {
	t, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: %s=%T", orm.ErrType, field, v)
	}
	*dst = t
	return nil
}
