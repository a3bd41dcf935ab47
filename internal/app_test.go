package internal_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aileon/awesome/internal"
)

type ctxKey struct{}

type pages struct{}

func (pages) Routes(r internal.Router) {
	r.GET("/whoami", func(c internal.Context) error {
		return c.String(http.StatusOK, internal.ContextValue[string](c, ctxKey{}))
	})
	r.Route("/admin", func(r internal.Router) {
		r.Use(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				if internal.ContextValue[string](c, ctxKey{}) != "root" {
					return c.Error(http.StatusForbidden, "admins only")
				}
				return next(c)
			}
		})
		r.GET("/", func(c internal.Context) error { return c.String(http.StatusOK, "panel") })
	})
	r.GET("/page", func(c internal.Context) error {
		return c.String(http.StatusOK, internal.QueryDefault(c, "n", "none"))
	})
}

func identify(next internal.HandlerFunc) internal.HandlerFunc {
	return func(c internal.Context) error {
		c.Set(ctxKey{}, c.Header("X-User"))
		return next(c)
	}
}

func TestApp_Middleware(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithMiddleware(identify), internal.WithHandlers(pages{}))

	t.Run("values flow to handlers", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		r.Header.Set("X-User", "ann")
		w := httptest.NewRecorder()
		app.ServeHTTP(w, r)
		assert.Equal(t, "ann", w.Body.String())
	})

	t.Run("group middleware rejects", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		r.Header.Set("X-User", "ann")
		w := httptest.NewRecorder()
		app.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "admins only", w.Body.String())
	})

	t.Run("group middleware allows", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		r.Header.Set("X-User", "root")
		w := httptest.NewRecorder()
		app.ServeHTTP(w, r)
		assert.Equal(t, "panel", w.Body.String())
	})

	t.Run("typed query helper", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page?n=3", nil))
		assert.Equal(t, "3", w.Body.String())
	})
}

func TestApp_Endpoints(t *testing.T) {
	t.Parallel()

	down := func(context.Context) error { return errors.New("down") }
	app := internal.New(
		internal.WithHealthChecks(internal.WithReadinessCheck("db", down)),
		internal.WithStaticFiles("/static/", fstest.MapFS{"public/app.css": {Data: []byte("body{}")}}, "public"),
		internal.WithMount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		})),
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.String(http.StatusNotFound, "nothing here")
		}),
	)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, get("/health/live").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get("/health/ready").Code)
	assert.Equal(t, "body{}", get("/static/app.css").Body.String())
	assert.Equal(t, http.StatusNotFound, get("/static/").Code)
	assert.Equal(t, "metrics", get("/metrics").Body.String())

	w := get("/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "nothing here", w.Body.String())
}

func TestApp_Cookies(t *testing.T) {
	t.Parallel()

	table := internal.NewRouteTable()
	table.Get("/in", internal.MustSignature(), func(c internal.Context, _ internal.Args) (any, error) {
		c.SetCookie("awesession", "token", 86400)
		return "ok", nil
	})
	w := serve(t, table, httptest.NewRequest(http.MethodGet, "/in", nil))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "awesession=token")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "HttpOnly")

	table2 := internal.NewRouteTable()
	table2.Get("/out", internal.MustSignature(), func(c internal.Context, _ internal.Args) (any, error) {
		c.DeleteCookie("awesession")
		return "redirect:/", nil
	})
	w = serve(t, table2, httptest.NewRequest(http.MethodGet, "/out", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "awesession=-deleted-")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	table := internal.NewRouteTable()
	table.Get("/", internal.MustSignature(), func(internal.Context, internal.Args) (any, error) { return "home", nil })
	app := internal.New(internal.WithHandlers(table))

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan net.Addr, 1)
	hookCalled := make(chan struct{}, 1)
	done := make(chan error, 1)

	go func() {
		done <- app.Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.OnReady(func(a net.Addr) { addrCh <- a }),
			internal.ShutdownTimeout(time.Second),
			internal.ShutdownHook(func(context.Context) error {
				hookCalled <- struct{}{}
				return nil
			}),
		)
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr.String() + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Len(t, hookCalled, 1)
}

func TestApp_RunShutdownErrors(t *testing.T) {
	t.Parallel()

	app := internal.New()
	ctx, cancel := context.WithCancel(context.Background())
	boom := errors.New("close failed")
	var order []string

	cancel()
	err := app.Run("127.0.0.1:0",
		internal.WithContext(ctx),
		internal.ShutdownHook(func(context.Context) error {
			order = append(order, "first")
			return boom
		}),
		internal.ShutdownHook(func(context.Context) error {
			order = append(order, "second")
			return nil
		}),
	)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, order, "hooks run in registration order")
}

func TestApp_RunListenError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	err = internal.New().Run(ln.Addr().String())
	require.Error(t, err)
}
