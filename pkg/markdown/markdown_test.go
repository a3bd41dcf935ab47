package markdown_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aileon/awesome/pkg/cache"
	"github.com/aileon/awesome/pkg/markdown"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("markdown to html", func(t *testing.T) {
		t.Parallel()

		out, err := markdown.New().Render(ctx, "# Title\n\nSome **bold** text.")
		require.NoError(t, err)
		assert.Contains(t, out, "<h1")
		assert.Contains(t, out, "<strong>bold</strong>")
	})

	t.Run("strips scripts and handlers", func(t *testing.T) {
		t.Parallel()

		out, err := markdown.New().Render(ctx, "hello <script>alert(1)</script> [x](javascript:alert(1)) <img src=x onerror=alert(1)>")
		require.NoError(t, err)
		assert.NotContains(t, out, "<script")
		assert.NotContains(t, out, "javascript:")
		assert.NotContains(t, out, "onerror")
	})

	t.Run("links get nofollow", func(t *testing.T) {
		t.Parallel()

		out, err := markdown.New().Render(ctx, "[site](https://example.com)")
		require.NoError(t, err)
		assert.Contains(t, out, `rel="nofollow"`)
	})

	t.Run("cached output", func(t *testing.T) {
		t.Parallel()

		mem := cache.NewMemory[string](16, 0)
		r := markdown.New(markdown.WithCache(cache.NewLoader[string](mem, time.Minute)))

		first, err := r.Render(ctx, "*x*")
		require.NoError(t, err)
		second, err := r.Render(ctx, "*x*")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, mem.Len())
	})
}

func TestTextToHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<p>a &lt;b&gt; &amp; c</p><p>second</p>", markdown.TextToHTML("a <b> & c\n\n   \nsecond"))
	assert.Equal(t, "", markdown.TextToHTML("\n \n"))
}
