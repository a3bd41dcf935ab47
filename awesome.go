package awesome

import (
	"context"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aileon/awesome/internal"
	"github.com/aileon/awesome/pkg/cookie"
)

type (
	// App orchestrates routing, middleware and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler renders errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health endpoints.
	HealthOption = internal.HealthOption

	// Component is anything that renders itself, such as a templ.Component.
	Component = internal.Component

	// TemplateRenderer resolves named templates.
	TemplateRenderer = internal.TemplateRenderer

	// ResponseWriter records status and size and runs pre-write hooks.
	ResponseWriter = internal.ResponseWriter

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option

	// HTTPError is a transport error with a status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// APIError is a client input error rendered as JSON.
	APIError = internal.APIError

	// RouteTable holds routes declared with parameter signatures.
	RouteTable = internal.RouteTable

	// Route is one RouteTable entry.
	Route = internal.Route

	// EndpointFunc is a handler receiving bound arguments.
	EndpointFunc = internal.EndpointFunc

	// Signature is a validated handler parameter contract.
	Signature = internal.Signature

	// Param is one declared parameter.
	Param = internal.Param

	// ParamKind classifies a Param.
	ParamKind = internal.ParamKind

	// Args are the parameters bound for a request.
	Args = internal.Args

	// Responder writes its own response.
	Responder = internal.Responder

	// ResponderFunc adapts a function to Responder.
	ResponderFunc = internal.ResponderFunc

	// StatusMessage is a status plus plain-text body result.
	StatusMessage = internal.StatusMessage
)

const (
	PathParam     = internal.PathParam
	RequiredParam = internal.RequiredParam
	OptionalParam = internal.OptionalParam
	CatchAllParam = internal.CatchAllParam
	RequestParam  = internal.RequestParam

	TemplateKey    = internal.TemplateKey
	RedirectPrefix = internal.RedirectPrefix
)

var (
	ErrInvalidSignature = internal.ErrInvalidSignature
	ErrInvalidRoute     = internal.ErrInvalidRoute
	ErrDuplicateRoute   = internal.ErrDuplicateRoute
	ErrTableSealed      = internal.ErrTableSealed
	ErrNoTemplates      = internal.ErrNoTemplates
)

// New creates an application. The App is immutable after creation.
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRouteTable creates an empty route table.
func NewRouteTable() *RouteTable {
	return internal.NewRouteTable()
}

// NewSignature validates a parameter declaration.
func NewSignature(params ...Param) (Signature, error) {
	return internal.NewSignature(params...)
}

// MustSignature is NewSignature that panics on a definition error.
func MustSignature(params ...Param) Signature {
	return internal.MustSignature(params...)
}

// Path declares a path segment parameter.
func Path(name string) Param { return internal.Path(name) }

// Required declares a named parameter that must be present.
func Required(name string) Param { return internal.Required(name) }

// Optional declares a named parameter with a default.
func Optional(name string, def any) Param { return internal.Optional(name, def) }

// CatchAll declares a bag for every parsed key.
func CatchAll(name string) Param { return internal.CatchAll(name) }

// Request declares injection of the raw request.
func Request() Param { return internal.Request() }

// BindArgs extracts sig's parameters from the request.
func BindArgs(c Context, sig Signature) (Args, error) {
	return internal.BindArgs(c, sig)
}

// Respond writes v as a response according to its type.
func Respond(c Context, v any) error {
	return internal.Respond(c, v)
}

// DefaultErrorHandler renders APIError, HTTPError and unknown errors.
func DefaultErrorHandler(c Context, err error) error {
	return internal.DefaultErrorHandler(c, err)
}

// App options

func WithMiddleware(mw ...Middleware) Option { return internal.WithMiddleware(mw...) }

func WithHandlers(h ...Handler) Option { return internal.WithHandlers(h...) }

// WithStaticFiles serves fsys/subDir under pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithMount attaches a plain http.Handler.
func WithMount(pattern string, h http.Handler) Option { return internal.WithMount(pattern, h) }

func WithErrorHandler(h ErrorHandler) Option { return internal.WithErrorHandler(h) }

func WithNotFoundHandler(h HandlerFunc) Option { return internal.WithNotFoundHandler(h) }

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option { return internal.WithHealthChecks(opts...) }

func WithLivenessPath(path string) HealthOption { return internal.WithLivenessPath(path) }

func WithReadinessPath(path string) HealthOption { return internal.WithReadinessPath(path) }

func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

func WithCustomLogger(l *slog.Logger) Option { return internal.WithCustomLogger(l) }

func WithCookieOptions(opts ...CookieOption) Option { return internal.WithCookieOptions(opts...) }

func WithTemplates(t TemplateRenderer) Option { return internal.WithTemplates(t) }

// Run options

func Logger(l *slog.Logger) RunOption { return internal.Logger(l) }

func ShutdownTimeout(d time.Duration) RunOption { return internal.ShutdownTimeout(d) }

func ShutdownHook(fn func(context.Context) error) RunOption { return internal.ShutdownHook(fn) }

func WithContext(ctx context.Context) RunOption { return internal.WithContext(ctx) }

func OnReady(fn func(net.Addr)) RunOption { return internal.OnReady(fn) }

// Errors

func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func WithError(err error) HTTPErrorOption { return internal.WithError(err) }

func WithErrorCode(code string) HTTPErrorOption { return internal.WithErrorCode(code) }

func WithRequestID(id string) HTTPErrorOption { return internal.WithRequestID(id) }

func AsHTTPError(err error) *HTTPError { return internal.AsHTTPError(err) }

func NewAPIError(code, data, message string) *APIError {
	return internal.NewAPIError(code, data, message)
}

func ErrValue(field, message string) *APIError { return internal.ErrValue(field, message) }

func ErrResourceNotFound(resource, message string) *APIError {
	return internal.ErrResourceNotFound(resource, message)
}

func ErrPermission(message string) *APIError { return internal.ErrPermission(message) }

func AsAPIError(err error) *APIError { return internal.AsAPIError(err) }

// ContextValue returns the request-context value under key as T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// QueryDefault returns a typed query parameter or def.
func QueryDefault[T ~string | ~int | ~bool](c Context, name string, def T) T {
	return internal.QueryDefault(c, name, def)
}
