package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/aileon/awesome/blog/models"
)

func (r *Registry) blogs(data map[string]any) templ.Component {
	blogs, _ := data["blogs"].([]*models.Blog)
	now := r.now()
	return layout("Blogs", currentUser(data), func(w *writer) {
		if len(blogs) == 0 {
			w.raw(`<p class="empty">Nothing here yet.</p>`)
			return
		}
		for _, b := range blogs {
			w.printf(`<article><h2><a href="/blog/%s">%s</a></h2>`, b.ID, b.Name)
			w.printf(`<p class="meta">%s by %s</p>`, RelativeTime(b.CreatedAt, now), b.UserName)
			w.printf(`<p>%s</p><a href="/blog/%s">Read more</a></article>`, b.Summary, b.ID)
		}
	})
}

func (r *Registry) blog(data map[string]any) templ.Component {
	b, _ := data["blog"].(*models.Blog)
	comments, _ := data["comments"].([]*models.Comment)
	user := currentUser(data)
	now := r.now()

	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if b == nil {
			return layout("Not found", user, func(w *writer) {
				w.raw(`<p class="empty">Blog not found.</p>`)
			}).Render(ctx, out)
		}
		return layout(b.Name, user, func(w *writer) {
			w.printf(`<article><h1>%s</h1>`, b.Name)
			w.printf(`<p class="meta">%s by %s</p>`, RelativeTime(b.CreatedAt, now), b.UserName)
			w.component(ctx, templ.Raw(b.HTML))
			w.raw(`</article><section class="comments">`)

			if user != nil {
				w.printf(`<form data-api="/api/blogs/%s/comments" data-redirect="/blog/%s">`, b.ID, b.ID)
				w.raw(`<textarea name="content" rows="4"></textarea><button type="submit">Comment</button></form>`)
			} else {
				w.raw(`<p><a href="/signin">Sign in</a> to comment.</p>`)
			}

			for _, c := range comments {
				w.printf(`<div class="comment"><p class="meta">%s, %s</p>`, c.UserName, RelativeTime(c.CreatedAt, now))
				w.component(ctx, templ.Raw(c.HTML))
				w.raw(`</div>`)
			}
			w.raw(`</section>`)
		}).Render(ctx, out)
	})
}

func (r *Registry) register(data map[string]any) templ.Component {
	return layout("Register", currentUser(data), func(w *writer) {
		w.raw(`<form data-api="/api/users" data-redirect="/" data-hash-password>`)
		w.raw(`<label>Name <input name="name" maxlength="50"></label>`)
		w.raw(`<label>Email <input name="email" type="email" maxlength="50"></label>`)
		w.raw(`<label>Password <input name="passwd" type="password"></label>`)
		w.raw(`<label>Repeat password <input name="passwd2" type="password"></label>`)
		w.raw(`<button type="submit">Register</button></form>`)
	})
}

func (r *Registry) signin(data map[string]any) templ.Component {
	return layout("Sign in", currentUser(data), func(w *writer) {
		w.raw(`<form data-api="/api/authenticate" data-redirect="/" data-hash-password>`)
		w.raw(`<label>Email <input name="email" type="email"></label>`)
		w.raw(`<label>Password <input name="passwd" type="password"></label>`)
		w.raw(`<button type="submit">Sign in</button></form>`)
	})
}

// manageList renders an admin table shell filled by the script from api.
func (r *Registry) manageList(title, api, items string) Page {
	return func(data map[string]any) templ.Component {
		index, _ := data["page_index"].(int)
		return layout("Manage "+title, currentUser(data), func(w *writer) {
			w.raw(`<ul class="tabs"><li><a href="/manage/comments">Comments</a></li>`)
			w.raw(`<li><a href="/manage/blogs">Blogs</a></li><li><a href="/manage/users">Users</a></li></ul>`)
			if items == "blogs" {
				w.raw(`<a class="button" href="/manage/blogs/create">New blog</a>`)
			}
			w.printf(`<table data-api="%s" data-items="%s" data-page="%d"></table>`, api, items, max(index, 1))
		})
	}
}

func (r *Registry) editBlog(data map[string]any) templ.Component {
	id, _ := data["id"].(string)
	action, _ := data["action"].(string)
	return layout("Edit blog", currentUser(data), func(w *writer) {
		w.printf(`<form data-api="%s" data-redirect="/manage/blogs" data-load="%s">`, action, id)
		w.raw(`<label>Name <input name="name" maxlength="50"></label>`)
		w.raw(`<label>Summary <textarea name="summary" rows="3" maxlength="200"></textarea></label>`)
		w.raw(`<label>Content <textarea name="content" rows="16"></textarea></label>`)
		w.raw(`<button type="submit">Save</button><a href="/manage/blogs">Cancel</a></form>`)
	})
}
