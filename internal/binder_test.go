package internal_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aileon/awesome/internal"
)

// echo responds with the bound arguments as JSON.
func echo(_ internal.Context, args internal.Args) (any, error) {
	return args.Map(), nil
}

func serve(t *testing.T, table *internal.RouteTable, req *http.Request, opts ...internal.Option) *httptest.ResponseRecorder {
	t.Helper()
	app := internal.New(append(opts, internal.WithHandlers(table))...)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestBindArgs_GET(t *testing.T) {
	t.Parallel()

	t.Run("path and query named parameters", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		table.Get("/blogs/{id}", internal.MustSignature(internal.Path("id"), internal.Optional("page", "1")), echo)

		w := serve(t, table, httptest.NewRequest(http.MethodGet, "/blogs/42?page=2", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"id": "42", "page": "2"}, decode(t, w))
	})

	t.Run("first query value wins", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		table.Get("/search", internal.MustSignature(internal.Required("q")), echo)

		w := serve(t, table, httptest.NewRequest(http.MethodGet, "/search?q=a&q=b", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "a", decode(t, w)["q"])
	})

	t.Run("undeclared keys are dropped", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		table.Get("/list", internal.MustSignature(internal.Optional("page", "1")), echo)

		w := serve(t, table, httptest.NewRequest(http.MethodGet, "/list?page=3&admin=true", nil))
		assert.Equal(t, map[string]any{"page": "3"}, decode(t, w))
	})

	t.Run("catch-all keeps every key", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		table.Get("/list", internal.MustSignature(internal.Optional("page", "1"), internal.CatchAll("kw")), echo)

		w := serve(t, table, httptest.NewRequest(http.MethodGet, "/list?page=3&sort=name", nil))
		assert.Equal(t, map[string]any{"page": "3", "sort": "name"}, decode(t, w))
	})

	t.Run("no named parameters reads only the path", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		table.Get("/blogs/{id}", internal.MustSignature(internal.Path("id")), echo)

		w := serve(t, table, httptest.NewRequest(http.MethodGet, "/blogs/7?page=9", nil))
		assert.Equal(t, map[string]any{"id": "7"}, decode(t, w))
	})

	t.Run("optional default", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		table.Get("/list", internal.MustSignature(internal.Optional("page", "1")), func(_ internal.Context, args internal.Args) (any, error) {
			return map[string]any{"page": args.Int("page", 0), "raw": args.String("page")}, nil
		})

		w := serve(t, table, httptest.NewRequest(http.MethodGet, "/list", nil))
		assert.Equal(t, map[string]any{"page": float64(1), "raw": "1"}, decode(t, w))
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		called := false
		table.Get("/search", internal.MustSignature(internal.Required("q")), func(internal.Context, internal.Args) (any, error) {
			called = true
			return nil, nil
		})

		w := serve(t, table, httptest.NewRequest(http.MethodGet, "/search", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing argument: q", w.Body.String())
		assert.False(t, called)
	})
}

func TestBindArgs_POST(t *testing.T) {
	t.Parallel()

	register := internal.MustSignature(internal.Required("email"), internal.Required("name"))

	post := func(body, contentType string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
		if contentType != "" {
			r.Header.Set("Content-Type", contentType)
		}
		return r
	}

	tests := []struct {
		name     string
		req      *http.Request
		wantCode int
		wantBody string
	}{
		{"json non-object", post(`"oops"`, "application/json"), http.StatusBadRequest, "JSON body must be object."},
		{"json array", post(`[1,2]`, "application/json"), http.StatusBadRequest, "JSON body must be object."},
		{"malformed json", post(`{`, "application/json"), http.StatusBadRequest, "JSON body must be object."},
		{"missing content type", post(`email=a`, ""), http.StatusBadRequest, "Missing Content-Type."},
		{"unsupported content type", post(`hi`, "text/plain"), http.StatusBadRequest, "Unsupported Content-Type: text/plain"},
		{"missing field", post(`{"email":"a@b.c"}`, "application/json; charset=utf-8"), http.StatusBadRequest, "Missing argument: name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table := internal.NewRouteTable()
			table.Post("/api/users", register, echo)

			w := serve(t, table, tt.req)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}

	t.Run("json object", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		table.Post("/api/users", register, echo)

		w := serve(t, table, post(`{"email":"a@b.c","name":"Ann","admin":true}`, "application/json"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"email": "a@b.c", "name": "Ann"}, decode(t, w))
	})

	t.Run("urlencoded form", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		table.Post("/api/users", register, echo)

		w := serve(t, table, post("email=a%40b.c&name=Ann&name=Bob", "application/x-www-form-urlencoded"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"email": "a@b.c", "name": "Ann"}, decode(t, w))
	})

	t.Run("multipart form", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("email", "a@b.c"))
		require.NoError(t, mw.WriteField("name", "Ann"))
		require.NoError(t, mw.Close())

		table := internal.NewRouteTable()
		table.Post("/api/users", register, echo)

		w := serve(t, table, post(buf.String(), mw.FormDataContentType()))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"email": "a@b.c", "name": "Ann"}, decode(t, w))
	})

	t.Run("path value overrides body value", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		table.Post("/api/blogs/{id}/comments", internal.MustSignature(internal.Path("id"), internal.Required("content")), echo)

		r := httptest.NewRequest(http.MethodPost, "/api/blogs/b1/comments", strings.NewReader(`{"id":"forged","content":"hi"}`))
		r.Header.Set("Content-Type", "application/json")
		w := serve(t, table, r)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"id": "b1", "content": "hi"}, decode(t, w))
	})

	t.Run("no named parameters skips the body", func(t *testing.T) {
		t.Parallel()

		table := internal.NewRouteTable()
		table.Post("/api/blogs/{id}/delete", internal.MustSignature(internal.Path("id"), internal.Request()), echo)

		w := serve(t, table, httptest.NewRequest(http.MethodPost, "/api/blogs/b1/delete", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"id": "b1"}, decode(t, w))
	})
}

func TestBindArgs_Request(t *testing.T) {
	t.Parallel()

	var withReq, withoutReq *http.Request
	table := internal.NewRouteTable()
	table.Get("/with", internal.MustSignature(internal.Request()), func(_ internal.Context, args internal.Args) (any, error) {
		withReq = args.Request()
		return nil, nil
	})
	table.Get("/without", internal.MustSignature(), func(_ internal.Context, args internal.Args) (any, error) {
		withoutReq = args.Request()
		return nil, nil
	})

	app := internal.New(internal.WithHandlers(table))
	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/with", nil))
	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/without", nil))

	require.NotNil(t, withReq)
	assert.Equal(t, "/with", withReq.URL.Path)
	assert.Nil(t, withoutReq)
}

func TestNewSignature(t *testing.T) {
	t.Parallel()

	valid := [][]internal.Param{
		{},
		{internal.Path("id")},
		{internal.Path("id"), internal.Required("name"), internal.Optional("page", "1")},
		{internal.Path("id"), internal.Request(), internal.Optional("page", "1"), internal.CatchAll("kw")},
		{internal.Required("email"), internal.CatchAll("kw"), internal.Request()},
	}
	for _, params := range valid {
		_, err := internal.NewSignature(params...)
		assert.NoError(t, err)
	}

	invalid := map[string][]internal.Param{
		"path after request":     {internal.Request(), internal.Path("id")},
		"required after request": {internal.Request(), internal.Required("email")},
		"path after catch-all":   {internal.CatchAll("kw"), internal.Path("id")},
		"duplicate name":         {internal.Required("a"), internal.Optional("a", nil)},
		"two catch-alls":         {internal.CatchAll("a"), internal.CatchAll("b")},
		"two requests":           {internal.Request(), {Name: "r2", Kind: internal.RequestParam}},
		"empty name":             {internal.Required("")},
	}
	for name, params := range invalid {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := internal.NewSignature(params...)
			require.ErrorIs(t, err, internal.ErrInvalidSignature)
			assert.Panics(t, func() { internal.MustSignature(params...) })
		})
	}
}
