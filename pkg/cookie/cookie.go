package cookie

import (
	"errors"
	"net/http"
)

// Deleted is the value written by Expire.
const Deleted = "-deleted-"

// ErrNotFound is returned when the request has no cookie with that name.
var ErrNotFound = errors.New("cookie: not found")

// Manager handles cookie operations.
type Manager struct {
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager. Cookies default to path "/", HttpOnly and
// SameSite=Lax.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) { m.domain = domain }
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) { m.path = path }
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) { m.httpOnly = httpOnly }
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.sameSite = ss }
}

// Get returns a cookie value. The Deleted sentinel reads as ErrNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	if c.Value == Deleted {
		return "", ErrNotFound
	}
	return c.Value, nil
}

// Set writes a cookie living for maxAge seconds.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.Cookie(name, value, maxAge))
}

// Expire overwrites a cookie with the Deleted sentinel and max-age 0.
func (m *Manager) Expire(w http.ResponseWriter, name string) {
	c := m.Cookie(name, Deleted, 0)
	// net/http omits Max-Age for 0; a negative value emits "Max-Age=0".
	c.MaxAge = -1
	http.SetCookie(w, c)
}

// Cookie builds a cookie with the manager's attributes.
func (m *Manager) Cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
