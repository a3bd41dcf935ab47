package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aileon/awesome/pkg/cookie"
)

// ErrNoTemplates is returned by RenderTemplate when the app has no
// TemplateRenderer.
var ErrNoTemplates = errors.New("awesome: no template renderer configured")

// Component is anything that renders itself, such as a templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// TemplateRenderer resolves a template name and its data to a Component.
type TemplateRenderer interface {
	Template(name string, data map[string]any) (Component, error)
}

// Context provides request/response access and helper methods.
// It implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	ResponseWriter() *ResponseWriter

	// Param returns the chi URL parameter, or "".
	Param(name string) string

	// Query returns the first query string value, or "".
	Query(name string) string

	Header(name string) string
	SetHeader(name, value string)

	JSON(code int, v any) error
	String(code int, s string) error
	HTML(code int, s string) error
	Blob(code int, contentType string, b []byte) error
	NoContent(code int) error
	Redirect(code int, url string) error

	// Error builds an HTTPError without writing anything.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Render writes component as text/html with the given status.
	Render(code int, component Component) error

	// RenderTemplate renders a named template through the app's
	// TemplateRenderer.
	RenderTemplate(code int, name string, data map[string]any) error

	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context for later middleware and
	// handlers.
	Set(key, value any)
	Get(key any) any

	Cookie(name string) (string, error)
	SetCookie(name, value string, maxAge int)
	// DeleteCookie expires a cookie with the deleted sentinel.
	DeleteCookie(name string)
}

type requestContext struct {
	request   *http.Request
	response  *ResponseWriter
	logger    *slog.Logger
	cookies   *cookie.Manager
	templates TemplateRenderer
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	return &requestContext{
		request:   r,
		response:  NewResponseWriter(w),
		logger:    app.logger,
		cookies:   app.cookieManager,
		templates: app.templates,
	}
}

func (c *requestContext) Request() *http.Request          { return c.request }
func (c *requestContext) Response() http.ResponseWriter   { return c.response }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.response }
func (c *requestContext) Deadline() (time.Time, bool)     { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}           { return c.request.Context().Done() }
func (c *requestContext) Err() error                      { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any               { return c.request.Context().Value(key) }
func (c *requestContext) Param(name string) string        { return chi.URLParam(c.request, name) }
func (c *requestContext) Query(name string) string        { return c.request.URL.Query().Get(name) }
func (c *requestContext) Header(name string) string       { return c.request.Header.Get(name) }
func (c *requestContext) SetHeader(name, value string)    { c.response.Header().Set(name, value) }
func (c *requestContext) Written() bool                   { return c.response.Written() }
func (c *requestContext) Logger() *slog.Logger            { return c.logger }
func (c *requestContext) Get(key any) any                 { return c.request.Context().Value(key) }

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json;charset=utf-8")
	c.response.WriteHeader(code)
	enc := json.NewEncoder(c.response)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	return c.Blob(code, "text/plain;charset=utf-8", []byte(s))
}

func (c *requestContext) HTML(code int, s string) error {
	return c.Blob(code, "text/html;charset=utf-8", []byte(s))
}

func (c *requestContext) Blob(code int, contentType string, b []byte) error {
	c.response.Header().Set("Content-Type", contentType)
	c.response.WriteHeader(code)
	_, err := c.response.Write(b)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Render(code int, component Component) error {
	c.response.Header().Set("Content-Type", "text/html;charset=utf-8")
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *requestContext) RenderTemplate(code int, name string, data map[string]any) error {
	if c.templates == nil {
		return ErrNoTemplates
	}
	component, err := c.templates.Template(name, data)
	if err != nil {
		return err
	}
	return c.Render(code, component)
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookies.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookies.Set(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookies.Expire(c.response, name)
}
