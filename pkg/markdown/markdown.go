// Package markdown turns user-authored text into sanitized HTML.
//
// Blog content is markdown rendered with goldmark (GitHub flavoured) and
// then passed through a bluemonday UGC policy. Comments are plain text:
// TextToHTML escapes them and wraps every non-blank line in a paragraph.
package markdown

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/aileon/awesome/pkg/cache"
)

// ErrRender wraps goldmark conversion failures.
var ErrRender = errors.New("markdown: render failed")

// Renderer converts markdown to safe HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	loader *cache.Loader[string]
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCache memoizes rendered output keyed by the content hash.
func WithCache(l *cache.Loader[string]) Option {
	return func(r *Renderer) { r.loader = l }
}

// WithPolicy replaces the default UGC sanitizing policy.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if p != nil {
			r.policy = p
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)

	r := &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: policy,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the sanitized HTML for src.
func (r *Renderer) Render(ctx context.Context, src string) (string, error) {
	if r.loader == nil {
		return r.render(src)
	}
	sum := sha256.Sum256([]byte(src))
	return r.loader.Get(ctx, "md:"+hex.EncodeToString(sum[:]), func(context.Context) (string, error) {
		return r.render(src)
	})
}

func (r *Renderer) render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Join(ErrRender, err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// TextToHTML escapes text and wraps each non-blank line in <p>.
func TextToHTML(text string) string {
	var b strings.Builder
	for line := range strings.SplitSeq(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}
