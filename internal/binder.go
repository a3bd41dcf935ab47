package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Definition errors returned by NewSignature.
var (
	ErrInvalidSignature = errors.New("awesome: invalid handler signature")
)

const maxBodyBytes = 10 << 20

// ParamKind classifies a declared handler parameter.
type ParamKind int

const (
	// PathParam is filled from a named path segment.
	PathParam ParamKind = iota
	// RequiredParam must be present in the body, query or path.
	RequiredParam
	// OptionalParam falls back to its default when absent.
	OptionalParam
	// CatchAllParam keeps every parsed key instead of only declared ones.
	CatchAllParam
	// RequestParam exposes the raw *http.Request through Args.Request.
	RequestParam
)

func (k ParamKind) String() string {
	switch k {
	case PathParam:
		return "path"
	case RequiredParam:
		return "required"
	case OptionalParam:
		return "optional"
	case CatchAllParam:
		return "catch-all"
	case RequestParam:
		return "request"
	}
	return "unknown"
}

// Param is one declared handler parameter.
type Param struct {
	Name    string
	Kind    ParamKind
	Default any
}

// Path declares a positional path parameter.
func Path(name string) Param { return Param{Name: name, Kind: PathParam} }

// Required declares a named parameter that must be supplied.
func Required(name string) Param { return Param{Name: name, Kind: RequiredParam} }

// Optional declares a named parameter with a default.
func Optional(name string, def any) Param {
	return Param{Name: name, Kind: OptionalParam, Default: def}
}

// CatchAll declares a bag receiving every parsed key.
func CatchAll(name string) Param { return Param{Name: name, Kind: CatchAllParam} }

// Request declares injection of the raw request.
func Request() Param { return Param{Name: "request", Kind: RequestParam} }

// Signature is the validated parameter contract of a handler.
type Signature struct {
	params   []Param
	named    map[string]Param
	required []string
	catchAll bool
	request  bool
}

// NewSignature validates params. Path parameters must come before any
// catch-all or request parameter, only optional and catch-all parameters
// may follow the request parameter, names must be unique, and at most one
// catch-all and one request parameter may be declared.
func NewSignature(params ...Param) (Signature, error) {
	s := Signature{params: params, named: make(map[string]Param)}
	seen := make(map[string]bool, len(params))
	for i, p := range params {
		if p.Name == "" {
			return Signature{}, fmt.Errorf("%w: parameter %d has no name", ErrInvalidSignature, i)
		}
		if seen[p.Name] {
			return Signature{}, fmt.Errorf("%w: duplicate parameter %q", ErrInvalidSignature, p.Name)
		}
		seen[p.Name] = true

		switch p.Kind {
		case PathParam:
			if s.request {
				return Signature{}, fmt.Errorf("%w: path parameter %q after the request parameter", ErrInvalidSignature, p.Name)
			}
			if s.catchAll {
				return Signature{}, fmt.Errorf("%w: path parameter %q after the catch-all parameter", ErrInvalidSignature, p.Name)
			}
		case RequiredParam:
			if s.request {
				return Signature{}, fmt.Errorf("%w: required parameter %q after the request parameter", ErrInvalidSignature, p.Name)
			}
			s.named[p.Name] = p
			s.required = append(s.required, p.Name)
		case OptionalParam:
			s.named[p.Name] = p
		case CatchAllParam:
			if s.catchAll {
				return Signature{}, fmt.Errorf("%w: more than one catch-all parameter", ErrInvalidSignature)
			}
			s.catchAll = true
		case RequestParam:
			if s.request {
				return Signature{}, fmt.Errorf("%w: more than one request parameter", ErrInvalidSignature)
			}
			s.request = true
		default:
			return Signature{}, fmt.Errorf("%w: parameter %q has unknown kind %d", ErrInvalidSignature, p.Name, p.Kind)
		}
	}
	return s, nil
}

// MustSignature is NewSignature that panics on a definition error.
func MustSignature(params ...Param) Signature {
	s, err := NewSignature(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Params returns the declared parameters in order.
func (s Signature) Params() []Param { return s.params }

// PathParams returns the names of the declared path parameters.
func (s Signature) PathParams() []string {
	var names []string
	for _, p := range s.params {
		if p.Kind == PathParam {
			names = append(names, p.Name)
		}
	}
	return names
}

// HasNamed reports whether the handler reads body or query parameters.
func (s Signature) HasNamed() bool { return len(s.named) > 0 || s.catchAll }

// HasCatchAll reports whether a catch-all parameter is declared.
func (s Signature) HasCatchAll() bool { return s.catchAll }

// HasRequest reports whether the request is injected.
func (s Signature) HasRequest() bool { return s.request }

// Args holds the parameters bound for one request.
type Args struct {
	values  map[string]any
	sig     Signature
	request *http.Request
}

// Get returns the bound value for name, falling back to an optional
// parameter's default.
func (a Args) Get(name string) (any, bool) {
	if v, ok := a.values[name]; ok {
		return v, true
	}
	if p, ok := a.sig.named[name]; ok && p.Kind == OptionalParam {
		return p.Default, true
	}
	return nil, false
}

// String returns the value as a string, "" when absent.
func (a Args) String(name string) string {
	v, ok := a.Get(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int parses the value as an int, returning def when absent or invalid.
func (a Args) Int(name string, def int) int {
	v, ok := a.Get(name)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return def
}

// Bool reports whether the value is true, "true", "1" or "on".
func (a Args) Bool(name string) bool {
	v, _ := a.Get(name)
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(b) {
		case "true", "1", "on", "yes":
			return true
		}
	}
	return false
}

// Map returns a copy of every bound value.
func (a Args) Map() map[string]any {
	m := make(map[string]any, len(a.values))
	for k, v := range a.values {
		m[k] = v
	}
	return m
}

// Request returns the raw request if the signature injects it, else nil.
func (a Args) Request() *http.Request {
	if !a.sig.request {
		return nil
	}
	return a.request
}

// BindArgs extracts the parameters declared by sig from the request. Input
// errors are 400 HTTPErrors.
func BindArgs(c Context, sig Signature) (Args, error) {
	r := c.Request()

	var kw map[string]any
	if sig.HasNamed() {
		var err error
		switch r.Method {
		case http.MethodPost:
			kw, err = parseBody(r)
		case http.MethodGet:
			kw = firstValues(r.URL.Query())
		}
		if err != nil {
			return Args{}, err
		}
	}

	path := pathValues(r)
	if kw == nil {
		kw = path
	} else {
		if !sig.catchAll && len(sig.named) > 0 {
			for k := range kw {
				if _, ok := sig.named[k]; !ok {
					delete(kw, k)
				}
			}
		}
		for k, v := range path {
			if _, dup := kw[k]; dup {
				c.LogWarn("duplicate arg name in named arg and path arg", slog.String("arg", k))
			}
			kw[k] = v
		}
	}

	for _, name := range sig.PathParams() {
		if _, ok := kw[name]; !ok {
			return Args{}, ErrBadRequest(fmt.Sprintf("Missing argument: %s", name))
		}
	}
	for _, name := range sig.required {
		if _, ok := kw[name]; !ok {
			return Args{}, ErrBadRequest(fmt.Sprintf("Missing argument: %s", name))
		}
	}

	return Args{values: kw, sig: sig, request: r}, nil
}

func parseBody(r *http.Request) (map[string]any, error) {
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if ct == "" {
		return nil, ErrBadRequest("Missing Content-Type.")
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	switch {
	case strings.HasPrefix(ct, "application/json"):
		var body any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, ErrBadRequest("JSON body must be object.", WithError(err))
		}
		obj, ok := body.(map[string]any)
		if !ok {
			return nil, ErrBadRequest("JSON body must be object.")
		}
		return obj, nil
	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return nil, ErrBadRequest("Invalid form body.", WithError(err))
		}
		return firstValues(r.PostForm), nil
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, ErrBadRequest("Invalid form body.", WithError(err))
		}
		return firstValues(r.MultipartForm.Value), nil
	}
	return nil, ErrBadRequest(fmt.Sprintf("Unsupported Content-Type: %s", r.Header.Get("Content-Type")))
}

func firstValues(values url.Values) map[string]any {
	kw := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			kw[k] = vs[0]
		}
	}
	return kw
}

func pathValues(r *http.Request) map[string]any {
	kw := make(map[string]any)
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return kw
	}
	for i, k := range rctx.URLParams.Keys {
		if k == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		kw[k] = rctx.URLParams.Values[i]
	}
	return kw
}
