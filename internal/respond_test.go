package internal_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aileon/awesome/internal"
)

type component string

func (c component) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(c))
	return err
}

type templates map[string]string

func (t templates) Template(name string, data map[string]any) (internal.Component, error) {
	body, ok := t[name]
	if !ok {
		return nil, errors.New("unknown template " + name)
	}
	return component(body + ":" + data["title"].(string)), nil
}

type article struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func respond(t *testing.T, v any, opts ...internal.Option) *httptest.ResponseRecorder {
	t.Helper()
	table := internal.NewRouteTable()
	table.Get("/", internal.MustSignature(), func(internal.Context, internal.Args) (any, error) { return v, nil })
	return serve(t, table, httptest.NewRequest(http.MethodGet, "/", nil), opts...)
}

func TestRespond(t *testing.T) {
	t.Parallel()

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		w := respond(t, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("bytes", func(t *testing.T) {
		t.Parallel()
		w := respond(t, []byte{1, 2, 3})
		assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
		assert.Equal(t, []byte{1, 2, 3}, w.Body.Bytes())
	})

	t.Run("string is html", func(t *testing.T) {
		t.Parallel()
		w := respond(t, "<h1>hi</h1>")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html;charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<h1>hi</h1>", w.Body.String())
	})

	t.Run("redirect marker", func(t *testing.T) {
		t.Parallel()
		w := respond(t, "redirect:/signin")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/signin", w.Header().Get("Location"))
	})

	t.Run("map is json", func(t *testing.T) {
		t.Parallel()
		w := respond(t, map[string]any{"a": 1, "text": "<b>"})
		assert.Equal(t, "application/json;charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"a":1,"text":"<b>"}`, w.Body.String())
		assert.Contains(t, w.Body.String(), "<b>")
	})

	t.Run("struct is json", func(t *testing.T) {
		t.Parallel()
		w := respond(t, &article{ID: "1", Name: "First"})
		assert.JSONEq(t, `{"id":"1","name":"First"}`, w.Body.String())
	})

	t.Run("template map", func(t *testing.T) {
		t.Parallel()
		w := respond(t, map[string]any{internal.TemplateKey: "blog", "title": "Hello"},
			internal.WithTemplates(templates{"blog": "BLOG"}))
		assert.Equal(t, "text/html;charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "BLOG:Hello", w.Body.String())
	})

	t.Run("template map without renderer", func(t *testing.T) {
		t.Parallel()
		w := respond(t, map[string]any{internal.TemplateKey: "blog"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("status code", func(t *testing.T) {
		t.Parallel()
		w := respond(t, http.StatusAccepted)
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("int out of range is text", func(t *testing.T) {
		t.Parallel()
		w := respond(t, 42)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain;charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "42", w.Body.String())
	})

	t.Run("status message", func(t *testing.T) {
		t.Parallel()
		w := respond(t, internal.StatusMessage{Code: http.StatusTeapot, Message: "short and stout"})
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "short and stout", w.Body.String())
	})

	t.Run("component", func(t *testing.T) {
		t.Parallel()
		w := respond(t, component("<p>c</p>"))
		assert.Equal(t, "<p>c</p>", w.Body.String())
	})

	t.Run("responder", func(t *testing.T) {
		t.Parallel()
		w := respond(t, internal.ResponderFunc(func(c internal.Context) error {
			return c.String(http.StatusCreated, "made")
		}))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "made", w.Body.String())
	})

	t.Run("anything else is text", func(t *testing.T) {
		t.Parallel()
		w := respond(t, []int{1, 2})
		assert.Equal(t, "text/plain;charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "[1 2]", w.Body.String())
	})
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	fail := func(err error) *httptest.ResponseRecorder {
		table := internal.NewRouteTable()
		table.Get("/", internal.MustSignature(), func(internal.Context, internal.Args) (any, error) { return nil, err })
		return serve(t, table, httptest.NewRequest(http.MethodGet, "/", nil))
	}

	t.Run("api errors", func(t *testing.T) {
		t.Parallel()

		w := fail(internal.ErrValue("email", "Invalid email."))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"value:invalid","data":"email","message":"Invalid email."}`, w.Body.String())

		w = fail(internal.ErrPermission(""))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"permission:forbidden","data":"permission","message":""}`, w.Body.String())

		w = fail(internal.NewAPIError("register:failed", "email", "Email is already in use."))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "register:failed")
	})

	t.Run("http error", func(t *testing.T) {
		t.Parallel()

		w := fail(internal.ErrForbidden("nope"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "nope", w.Body.String())
	})

	t.Run("unknown error", func(t *testing.T) {
		t.Parallel()

		w := fail(errors.New("db exploded"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db exploded")
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	base := errors.New("root cause")
	he := internal.ErrBadRequest("bad", internal.WithError(base), internal.WithErrorCode("E1"))
	wrapped := errors.Join(errors.New("ctx"), he)

	require.NotNil(t, internal.AsHTTPError(wrapped))
	assert.Equal(t, "E1", internal.AsHTTPError(wrapped).ErrorCode)
	assert.ErrorIs(t, he, base)
	assert.Nil(t, internal.AsHTTPError(base))

	ae := internal.ErrValue("name", "Invalid name.")
	assert.Equal(t, "value:invalid: Invalid name.", ae.Error())
	assert.Same(t, ae, internal.AsAPIError(errors.Join(base, ae)))
}
