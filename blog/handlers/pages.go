package handlers

import (
	"github.com/aileon/awesome"
	"github.com/aileon/awesome/pkg/markdown"
	"github.com/aileon/awesome/pkg/orm"
	"github.com/aileon/awesome/pkg/pagination"
)

// frontPageSize is how many of the newest blogs the front page shows.
const frontPageSize = 4

func (h *Handlers) index(c awesome.Context, _ awesome.Args) (any, error) {
	blogs, err := h.store.Blogs.FindAll(c, orm.Query{OrderBy: newestFirst, Limit: frontPageSize})
	if err != nil {
		return nil, err
	}
	return view(c, "blogs", map[string]any{"blogs": blogs}), nil
}

func (h *Handlers) registerPage(c awesome.Context, _ awesome.Args) (any, error) {
	return view(c, "register", nil), nil
}

func (h *Handlers) signinPage(c awesome.Context, _ awesome.Args) (any, error) {
	return view(c, "signin", nil), nil
}

func (h *Handlers) blogPage(c awesome.Context, args awesome.Args) (any, error) {
	blog, err := h.findBlog(c, args.String("id"))
	if err != nil {
		return nil, err
	}
	comments, err := h.store.Comments.FindAll(c, orm.Query{
		Where:   "blog_id=?",
		Args:    []any{blog.ID},
		OrderBy: newestFirst,
	})
	if err != nil {
		return nil, err
	}

	if blog.HTML, err = h.md.Render(c, blog.Content); err != nil {
		return nil, err
	}
	for _, cm := range comments {
		cm.HTML = markdown.TextToHTML(cm.Content)
	}
	return view(c, "blog", map[string]any{"blog": blog, "comments": comments}), nil
}

func (h *Handlers) manage(_ awesome.Context, _ awesome.Args) (any, error) {
	return awesome.RedirectPrefix + "/manage/comments", nil
}

func (h *Handlers) managePage(name string) awesome.EndpointFunc {
	return func(c awesome.Context, args awesome.Args) (any, error) {
		return view(c, name, map[string]any{"page_index": pagination.Index(args.String("page"))}), nil
	}
}

func (h *Handlers) createBlogPage(c awesome.Context, _ awesome.Args) (any, error) {
	return view(c, "manage_blog_edit", map[string]any{"id": "", "action": "/api/blogs"}), nil
}

func (h *Handlers) editBlogPage(c awesome.Context, args awesome.Args) (any, error) {
	id := args.String("id")
	return view(c, "manage_blog_edit", map[string]any{"id": id, "action": "/api/blogs/" + id}), nil
}
