package handlers

import (
	"context"
	"strings"

	"github.com/aileon/awesome"
	"github.com/aileon/awesome/blog/models"
	"github.com/aileon/awesome/pkg/orm"
	"github.com/aileon/awesome/pkg/pagination"
)

const newestFirst = "created_at desc"

// listPage counts the table, then loads the requested page newest first.
func listPage[R any, P interface {
	*R
	orm.Record
}](ctx context.Context, t *orm.Table[R, P], index string) (pagination.Page, []*R, error) {
	n, err := t.Count(ctx, "")
	if err != nil {
		return pagination.Page{}, nil, err
	}
	p := pagination.New(n, pagination.Index(index), pagination.DefaultSize)
	if p.Empty() {
		return p, []*R{}, nil
	}
	items, err := t.FindAll(ctx, orm.Query{OrderBy: newestFirst, Limit: p.Window()})
	return p, items, err
}

func (h *Handlers) listBlogs(c awesome.Context, args awesome.Args) (any, error) {
	p, blogs, err := listPage(c, h.store.Blogs, args.String("page"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"page": p, "blogs": blogs}, nil
}

func (h *Handlers) listComments(c awesome.Context, args awesome.Args) (any, error) {
	p, comments, err := listPage(c, h.store.Comments, args.String("page"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"page": p, "comments": comments}, nil
}

func (h *Handlers) listUsers(c awesome.Context, args awesome.Args) (any, error) {
	p, users, err := listPage(c, h.store.Users, args.String("page"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"page": p, "users": users}, nil
}

func (h *Handlers) findBlog(ctx context.Context, id string) (*models.Blog, error) {
	blog, err := h.store.Blogs.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, awesome.ErrResourceNotFound("blog", "")
	}
	return blog, nil
}

func (h *Handlers) getBlog(c awesome.Context, args awesome.Args) (any, error) {
	return h.findBlog(c, args.String("id"))
}

func blogFrom(args awesome.Args) blogInput {
	return blogInput{
		Name:    strings.TrimSpace(args.String("name")),
		Summary: strings.TrimSpace(args.String("summary")),
		Content: strings.TrimSpace(args.String("content")),
	}
}

func (h *Handlers) createBlog(c awesome.Context, args awesome.Args) (any, error) {
	in := blogFrom(args)
	if err := h.validate.Struct(&in); err != nil {
		return nil, err
	}

	user := currentUser(c)
	blog := &models.Blog{
		UserID:    user.ID,
		UserName:  user.Name,
		UserImage: user.Image,
		Name:      in.Name,
		Summary:   in.Summary,
		Content:   in.Content,
	}
	if err := h.store.Blogs.Save(c, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (h *Handlers) updateBlog(c awesome.Context, args awesome.Args) (any, error) {
	blog, err := h.findBlog(c, args.String("id"))
	if err != nil {
		return nil, err
	}

	in := blogFrom(args)
	if err := h.validate.Struct(&in); err != nil {
		return nil, err
	}

	blog.Name, blog.Summary, blog.Content = in.Name, in.Summary, in.Content
	if err := h.store.Blogs.Update(c, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// deleteBlog removes the blog and its comments in one transaction.
func (h *Handlers) deleteBlog(c awesome.Context, args awesome.Args) (any, error) {
	blog, err := h.findBlog(c, args.String("id"))
	if err != nil {
		return nil, err
	}

	err = h.store.Transact(c, func(s *models.Store) error {
		comments, err := s.Comments.FindAll(c, orm.Query{Where: "blog_id=?", Args: []any{blog.ID}})
		if err != nil {
			return err
		}
		for _, cm := range comments {
			if err := s.Comments.Remove(c, cm); err != nil {
				return err
			}
		}
		return s.Blogs.Remove(c, blog)
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": blog.ID}, nil
}

func (h *Handlers) createComment(c awesome.Context, args awesome.Args) (any, error) {
	in := commentInput{Content: strings.TrimSpace(args.String("content"))}
	if err := h.validate.Struct(&in); err != nil {
		return nil, err
	}

	blog, err := h.findBlog(c, args.String("id"))
	if err != nil {
		return nil, err
	}

	user := currentUser(c)
	comment := &models.Comment{
		BlogID:    blog.ID,
		UserID:    user.ID,
		UserName:  user.Name,
		UserImage: user.Image,
		Content:   in.Content,
	}
	if err := h.store.Comments.Save(c, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
