package internal

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Route table definition errors.
var (
	ErrInvalidRoute   = errors.New("awesome: invalid route")
	ErrDuplicateRoute = errors.New("awesome: duplicate route")
	ErrTableSealed    = errors.New("awesome: route table is sealed")
)

// EndpointFunc is a handler bound through a Signature. Its result is turned
// into a response by Respond.
type EndpointFunc func(c Context, args Args) (any, error)

// Route is one entry of a RouteTable.
type Route struct {
	Method     string
	Pattern    string
	Signature  Signature
	Handler    EndpointFunc
	Middleware []Middleware
}

// RouteTable collects routes at startup and registers them on a Router.
// It becomes read-only once Routes has run.
type RouteTable struct {
	mu     sync.Mutex
	routes []Route
	sealed bool
}

// NewRouteTable creates an empty table.
func NewRouteTable() *RouteTable {
	return &RouteTable{}
}

var segmentPattern = regexp.MustCompile(`\{([^}:]+)(:[^}]*)?\}`)

// Add validates and appends a route. Every path parameter of sig must
// appear as a {name} segment of pattern.
func (t *RouteTable) Add(method, pattern string, sig Signature, h EndpointFunc, mw ...Middleware) error {
	method = strings.ToUpper(method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodHead:
	default:
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidRoute, method)
	}
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("%w: pattern %q must start with /", ErrInvalidRoute, pattern)
	}
	if h == nil {
		return fmt.Errorf("%w: %s %s has no handler", ErrInvalidRoute, method, pattern)
	}

	var segments []string
	for _, m := range segmentPattern.FindAllStringSubmatch(pattern, -1) {
		segments = append(segments, m[1])
	}
	for _, name := range sig.PathParams() {
		if !slices.Contains(segments, name) {
			return fmt.Errorf("%w: %s %s declares path parameter %q missing from the pattern", ErrInvalidRoute, method, pattern, name)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sealed {
		return ErrTableSealed
	}
	for _, r := range t.routes {
		if r.Method == method && r.Pattern == pattern {
			return fmt.Errorf("%w: %s %s", ErrDuplicateRoute, method, pattern)
		}
	}
	t.routes = append(t.routes, Route{
		Method:     method,
		Pattern:    pattern,
		Signature:  sig,
		Handler:    h,
		Middleware: mw,
	})
	return nil
}

// MustAdd is Add that panics on a definition error.
func (t *RouteTable) MustAdd(method, pattern string, sig Signature, h EndpointFunc, mw ...Middleware) {
	if err := t.Add(method, pattern, sig, h, mw...); err != nil {
		panic(err)
	}
}

// Get registers a GET route, panicking on definition errors.
func (t *RouteTable) Get(pattern string, sig Signature, h EndpointFunc, mw ...Middleware) {
	t.MustAdd(http.MethodGet, pattern, sig, h, mw...)
}

// Post registers a POST route, panicking on definition errors.
func (t *RouteTable) Post(pattern string, sig Signature, h EndpointFunc, mw ...Middleware) {
	t.MustAdd(http.MethodPost, pattern, sig, h, mw...)
}

// Lookup returns the route registered for method and pattern.
func (t *RouteTable) Lookup(method, pattern string) (Route, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.routes {
		if r.Method == strings.ToUpper(method) && r.Pattern == pattern {
			return r, true
		}
	}
	return Route{}, false
}

// All returns a copy of the registered routes in insertion order.
func (t *RouteTable) All() []Route {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.routes)
}

// Routes registers every route on r and seals the table.
func (t *RouteTable) Routes(r Router) {
	t.mu.Lock()
	t.sealed = true
	routes := slices.Clone(t.routes)
	t.mu.Unlock()

	for _, rt := range routes {
		r.Method(rt.Method, rt.Pattern, rt.HandlerFunc(), rt.Middleware...)
	}
}

// HandlerFunc binds the arguments, calls the endpoint and coerces its
// result into a response.
func (rt Route) HandlerFunc() HandlerFunc {
	return func(c Context) error {
		args, err := BindArgs(c, rt.Signature)
		if err != nil {
			return err
		}
		result, err := rt.Handler(c, args)
		if err != nil {
			return err
		}
		return Respond(c, result)
	}
}
