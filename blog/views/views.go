// Package views renders the blog's pages as templ components.
//
// Handlers return a map naming a template under "__template__"; the
// Registry resolves that name to a component built from the map.
package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/aileon/awesome"
	"github.com/aileon/awesome/blog/models"
)

// UserKey holds the signed-in user (or nil) in template data.
const UserKey = "__user__"

// ErrUnknownTemplate is returned for names missing from the registry.
var ErrUnknownTemplate = errors.New("views: unknown template")

// Page builds a component from handler data.
type Page func(data map[string]any) templ.Component

// Registry maps template names to pages.
type Registry struct {
	pages map[string]Page
	now   func() time.Time
}

var _ awesome.TemplateRenderer = (*Registry)(nil)

// NewRegistry returns a registry holding every blog page.
func NewRegistry() *Registry {
	r := &Registry{now: time.Now}
	r.pages = map[string]Page{
		"blogs":            r.blogs,
		"blog":             r.blog,
		"register":         r.register,
		"signin":           r.signin,
		"manage_blogs":     r.manageList("Blogs", "/api/blogs", "blogs"),
		"manage_comments":  r.manageList("Comments", "/api/comments", "comments"),
		"manage_users":     r.manageList("Users", "/api/users", "users"),
		"manage_blog_edit": r.editBlog,
	}
	return r
}

// WithClock replaces time.Now for RelativeTime.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// Template implements awesome.TemplateRenderer.
func (r *Registry) Template(name string, data map[string]any) (awesome.Component, error) {
	page, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	return page(data), nil
}

// RelativeTime formats a created_at timestamp for humans.
func RelativeTime(ts float64, now time.Time) string {
	sec := int64(ts)
	t := time.Unix(sec, int64((ts-float64(sec))*1e9))
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "1 minute ago"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d/(24*time.Hour)))
	default:
		return t.Format(time.DateOnly)
	}
}

func currentUser(data map[string]any) *models.User {
	u, _ := data[UserKey].(*models.User)
	return u
}

// writer accumulates the first write error so templates read linearly.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) { w.raw(templ.EscapeString(s)) }

func (w *writer) printf(format string, args ...any) {
	for i, a := range args {
		if s, ok := a.(string); ok {
			args[i] = templ.EscapeString(s)
		}
	}
	w.raw(fmt.Sprintf(format, args...))
}

func (w *writer) component(ctx context.Context, c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
}

// layout wraps body in the shared page chrome.
func layout(title string, user *models.User, body func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!DOCTYPE html><html><head><meta charset="utf-8">`)
		w.printf(`<title>%s - Awesome</title>`, title)
		w.raw(`<link rel="stylesheet" href="/static/css/awesome.css">`)
		w.raw(`<script src="/static/js/awesome.js" defer></script></head><body>`)
		w.raw(`<nav><a href="/">Awesome</a><ul>`)
		if user != nil {
			w.printf(`<li class="user"><img src="%s" alt=""> %s</li>`, user.Image, user.Name)
			if user.Admin {
				w.raw(`<li><a href="/manage/">Manage</a></li>`)
			}
			w.raw(`<li><a href="/signout">Sign out</a></li>`)
		} else {
			w.raw(`<li><a href="/signin">Sign in</a></li><li><a href="/register">Register</a></li>`)
		}
		w.raw(`</ul></nav><main>`)
		body(w)
		w.raw(`</main></body></html>`)
		return w.err
	})
}
