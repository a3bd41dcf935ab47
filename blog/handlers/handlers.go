// Package handlers declares the blog's pages and JSON API on a route table.
package handlers

import (
	"github.com/aileon/awesome"
	"github.com/aileon/awesome/blog/models"
	"github.com/aileon/awesome/blog/views"
	"github.com/aileon/awesome/middlewares"
	"github.com/aileon/awesome/pkg/markdown"
	"github.com/aileon/awesome/pkg/session"
)

// DefaultCookieName and DefaultMaxAge match the session defaults of the
// configuration.
const (
	DefaultCookieName = "awesession"
	DefaultMaxAge     = 86400
)

// Option configures Handlers.
type Option func(*Handlers)

// WithCookie sets the session cookie name and max-age in seconds.
func WithCookie(name string, maxAge int) Option {
	return func(h *Handlers) {
		if name != "" {
			h.cookieName = name
		}
		if maxAge > 0 {
			h.maxAge = maxAge
		}
	}
}

// Handlers serves the blog.
type Handlers struct {
	store      *models.Store
	codec      *session.Codec[*models.User]
	md         *markdown.Renderer
	validate   *validate
	table      *awesome.RouteTable
	cookieName string
	maxAge     int
}

var _ awesome.Handler = (*Handlers)(nil)

// New builds the handlers and their route table. It panics on a route
// definition error.
func New(store *models.Store, codec *session.Codec[*models.User], md *markdown.Renderer, opts ...Option) *Handlers {
	h := &Handlers{
		store:      store,
		codec:      codec,
		md:         md,
		validate:   newValidate(),
		cookieName: DefaultCookieName,
		maxAge:     DefaultMaxAge,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.table = h.routes()
	return h
}

// Table exposes the declared routes.
func (h *Handlers) Table() *awesome.RouteTable { return h.table }

// Routes implements awesome.Handler.
func (h *Handlers) Routes(r awesome.Router) { h.table.Routes(r) }

func (h *Handlers) routes() *awesome.RouteTable {
	t := awesome.NewRouteTable()
	sig := awesome.MustSignature
	page := awesome.Optional("page", "1")
	admin := middlewares.RequireAdmin[*models.User]()
	signedIn := middlewares.RequireUser[*models.User]()

	// pages
	t.Get("/", sig(), h.index)
	t.Get("/register", sig(), h.registerPage)
	t.Get("/signin", sig(), h.signinPage)
	t.Get("/signout", sig(awesome.Request()), h.signout)
	t.Get("/blog/{id}", sig(awesome.Path("id")), h.blogPage)
	t.Get("/manage/", sig(), h.manage)
	t.Get("/manage/blogs", sig(page), h.managePage("manage_blogs"))
	t.Get("/manage/blogs/create", sig(), h.createBlogPage)
	t.Get("/manage/blogs/created", sig(), h.createBlogPage)
	t.Get("/manage/blogs/edit", sig(awesome.Required("id")), h.editBlogPage)
	t.Get("/manage/comments", sig(page), h.managePage("manage_comments"))
	t.Get("/manage/users", sig(page), h.managePage("manage_users"))

	// api
	t.Post("/api/users", sig(awesome.Required("email"), awesome.Required("name"), awesome.Required("passwd")), h.register)
	t.Post("/api/authenticate", sig(awesome.Required("email"), awesome.Required("passwd")), h.authenticate)
	t.Get("/api/users", sig(page), h.listUsers)
	t.Get("/api/blogs", sig(page), h.listBlogs)
	t.Post("/api/blogs", sig(awesome.Required("name"), awesome.Required("summary"), awesome.Required("content")), h.createBlog, admin)
	t.Get("/api/blogs/{id}", sig(awesome.Path("id")), h.getBlog)
	t.Post("/api/blogs/{id}", sig(awesome.Path("id"), awesome.Required("name"), awesome.Required("summary"), awesome.Required("content")), h.updateBlog, admin)
	t.Post("/api/blogs/{id}/delete", sig(awesome.Path("id")), h.deleteBlog, admin)
	t.Post("/api/blogs/{id}/comments", sig(awesome.Path("id"), awesome.Required("content")), h.createComment, signedIn)
	t.Get("/api/comments", sig(page), h.listComments)

	return t
}

func currentUser(c awesome.Context) *models.User {
	u, _ := middlewares.CurrentUser[*models.User](c)
	return u
}

// view names the template for data and adds the signed-in user.
func view(c awesome.Context, name string, data map[string]any) map[string]any {
	if data == nil {
		data = make(map[string]any, 2)
	}
	data[awesome.TemplateKey] = name
	data[views.UserKey] = currentUser(c)
	return data
}
