package middlewares

import (
	"github.com/aileon/awesome/internal"
	"github.com/aileon/awesome/pkg/session"
)

type currentUserKey struct{}

// AuthOption configures Authenticate.
type AuthOption func(*authConfig)

type authConfig struct {
	onReject func()
}

// WithRejectHook is called for every presented cookie that fails
// validation.
func WithRejectHook(fn func()) AuthOption {
	return func(cfg *authConfig) {
		cfg.onReject = fn
	}
}

// Authenticate resolves the session cookie named cookieName to a subject and
// stores it for CurrentUser. Requests without a valid cookie continue
// anonymously.
func Authenticate[S session.Subject](codec *session.Codec[S], cookieName string, opts ...AuthOption) internal.Middleware {
	var cfg authConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, err := c.Cookie(cookieName)
			if err != nil || token == "" {
				return next(c)
			}

			user, ok := codec.Validate(c, token)
			if !ok {
				if cfg.onReject != nil {
					cfg.onReject()
				}
				return next(c)
			}

			c.LogDebug("session resolved", "user_id", user.SubjectID())
			c.Set(currentUserKey{}, user)
			return next(c)
		}
	}
}

// CurrentUser returns the subject stored by Authenticate.
func CurrentUser[S session.Subject](c internal.Context) (S, bool) {
	user, ok := c.Get(currentUserKey{}).(S)
	return user, ok
}

// RequireUser rejects anonymous requests with a permission APIError.
func RequireUser[S session.Subject]() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if _, ok := CurrentUser[S](c); !ok {
				return internal.ErrPermission("Please signin first.")
			}
			return next(c)
		}
	}
}

// Admin is a subject that may carry the administrator flag.
type Admin interface {
	session.Subject
	IsAdmin() bool
}

// RequireAdmin rejects requests unless an administrator is signed in.
func RequireAdmin[S Admin]() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if user, ok := CurrentUser[S](c); !ok || !user.IsAdmin() {
				return internal.ErrPermission("")
			}
			return next(c)
		}
	}
}
