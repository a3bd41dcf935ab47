package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aileon/awesome/internal"
	"github.com/aileon/awesome/middlewares"
	"github.com/aileon/awesome/pkg/logger"
	"github.com/aileon/awesome/pkg/session"
)

type member struct {
	id     string
	secret string
	admin  bool
}

func (m *member) SubjectID() string     { return m.id }
func (m *member) SessionSecret() string { return m.secret }
func (m *member) IsAdmin() bool         { return m.admin }

func newCodec(users ...*member) *session.Codec[*member] {
	byID := make(map[string]*member, len(users))
	for _, u := range users {
		byID[u.id] = u
	}
	return session.New("test-key", func(_ context.Context, id string) (*member, bool, error) {
		u, ok := byID[id]
		return u, ok, nil
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	alice := &member{id: "alice", secret: "s1"}
	root := &member{id: "root", secret: "s2", admin: true}
	codec := newCodec(alice, root)

	var rejected atomic.Int32
	auth := middlewares.Authenticate(codec, "awesession", middlewares.WithRejectHook(func() { rejected.Add(1) }))

	app := newApp(logger.NewNope(), []internal.Middleware{auth}, func(r internal.Router) {
		r.GET("/me", func(c internal.Context) error {
			u, ok := middlewares.CurrentUser[*member](c)
			if !ok {
				return c.String(http.StatusOK, "anonymous")
			}
			return c.String(http.StatusOK, u.id)
		})
		r.GET("/private", func(c internal.Context) error {
			return c.String(http.StatusOK, "private")
		}, middlewares.RequireUser[*member]())
		r.GET("/admin", func(c internal.Context) error {
			return c.String(http.StatusOK, "admin")
		}, middlewares.RequireAdmin[*member]())
	})

	do := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: "awesession", Value: token})
		}
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		return rec
	}

	t.Run("no cookie is anonymous", func(t *testing.T) {
		rec := do("/me", "")
		require.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("valid cookie resolves the user", func(t *testing.T) {
		rec := do("/me", codec.Mint(alice))
		require.Equal(t, "alice", rec.Body.String())
	})

	t.Run("tampered cookie is anonymous and counted", func(t *testing.T) {
		before := rejected.Load()
		rec := do("/me", "alice-9999999999-0000000000000000000000000000000000000000")
		require.Equal(t, "anonymous", rec.Body.String())
		require.Equal(t, before+1, rejected.Load())
	})

	t.Run("deleted sentinel is anonymous", func(t *testing.T) {
		rec := do("/me", "-deleted-")
		require.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("RequireUser", func(t *testing.T) {
		rec := do("/private", "")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.JSONEq(t, `{"error":"permission:forbidden","data":"permission","message":"Please signin first."}`, rec.Body.String())

		rec = do("/private", codec.Mint(alice))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("RequireAdmin", func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, do("/admin", "").Code)
		require.Equal(t, http.StatusForbidden, do("/admin", codec.Mint(alice)).Code)

		rec := do("/admin", codec.Mint(root))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "admin", rec.Body.String())
	})
}
