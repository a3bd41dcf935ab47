// Package session mints and validates stateless session tokens.
//
// A token has the form
//
//	<subject id>-<expiry unix seconds>-<sha1 hex of "id-secret-expiry-key">
//
// where secret is the subject's current stored secret (its password hash)
// and key is the server signing key. Nothing is stored server-side; changing
// the subject's secret invalidates every token issued before the change.
package session

import (
	"context"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aileon/awesome/pkg/logger"
)

// DefaultTTL is the lifetime of a minted token.
const DefaultTTL = 24 * time.Hour

// Subject is anything a token can be issued for.
type Subject interface {
	SubjectID() string
	SessionSecret() string
}

// LookupFunc loads a subject by id. A missing subject is (zero, false, nil).
type LookupFunc[S Subject] func(ctx context.Context, id string) (S, bool, error)

// Option configures a Codec.
type Option func(*options)

type options struct {
	logger *slog.Logger
	now    func() time.Time
	ttl    time.Duration
}

// WithTTL sets the token lifetime.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger used to report rejected tokens.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Codec mints and validates tokens for subjects of type S.
type Codec[S Subject] struct {
	lookup LookupFunc[S]
	key    string
	opts   options
	group  singleflight.Group
}

// New creates a codec signing with key and resolving subjects with lookup.
func New[S Subject](key string, lookup LookupFunc[S], opts ...Option) *Codec[S] {
	o := options{
		logger: logger.NewNope(),
		now:    time.Now,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Codec[S]{lookup: lookup, key: key, opts: o}
}

// TTL returns the configured token lifetime.
func (c *Codec[S]) TTL() time.Duration { return c.opts.ttl }

// Mint issues a token for s that expires after the codec's TTL.
func (c *Codec[S]) Mint(s S) string {
	return Mint(s.SubjectID(), s.SessionSecret(), c.opts.now().Add(c.opts.ttl), c.key)
}

// Validate resolves a token to its subject. Every failure, including a
// panicking lookup, yields (zero, false).
func (c *Codec[S]) Validate(ctx context.Context, token string) (subject S, ok bool) {
	var zero S
	defer func() {
		if r := recover(); r != nil {
			c.opts.logger.ErrorContext(ctx, "session lookup panicked", slog.Any("panic", r))
			subject, ok = zero, false
		}
	}()

	parts := strings.Split(token, "-")
	if len(parts) != 3 || parts[0] == "" {
		return zero, false
	}
	uid, expiry, signature := parts[0], parts[1], parts[2]

	expires, err := strconv.ParseFloat(expiry, 64)
	if err != nil || math.IsNaN(expires) || math.IsInf(expires, 0) {
		return zero, false
	}
	now := c.opts.now()
	if expires <= float64(now.UnixMicro())/1e6 {
		return zero, false
	}

	s, found, err := c.load(ctx, uid)
	if err != nil {
		c.opts.logger.WarnContext(ctx, "session subject lookup failed", slog.String("uid", uid), slog.Any("error", err))
		return zero, false
	}
	if !found {
		return zero, false
	}

	want := Sign(uid, s.SessionSecret(), expiry, c.key)
	if subtle.ConstantTimeCompare([]byte(want), []byte(signature)) != 1 {
		c.opts.logger.InfoContext(ctx, "invalid sha1", slog.String("uid", uid))
		return zero, false
	}
	return s, true
}

type loaded[S Subject] struct {
	subject S
	found   bool
}

// load coalesces concurrent lookups of the same subject. The shared lookup
// runs detached from the caller's cancellation so that one aborted request
// does not fail the others waiting on it.
func (c *Codec[S]) load(ctx context.Context, uid string) (S, bool, error) {
	v, err, _ := c.group.Do(uid, func() (any, error) {
		s, found, err := c.lookup(context.WithoutCancel(ctx), uid)
		if err != nil {
			return nil, err
		}
		return loaded[S]{subject: s, found: found}, nil
	})
	if err != nil {
		var zero S
		return zero, false, err
	}
	r := v.(loaded[S])
	return r.subject, r.found, nil
}

// Mint builds a token for the given subject id and secret.
func Mint(subjectID, secret string, expires time.Time, key string) string {
	expiry := strconv.FormatInt(expires.Unix(), 10)
	return subjectID + "-" + expiry + "-" + Sign(subjectID, secret, expiry, key)
}

// Sign returns the hex sha1 signature over "id-secret-expiry-key".
func Sign(subjectID, secret, expiry, key string) string {
	sum := sha1.Sum([]byte(subjectID + "-" + secret + "-" + expiry + "-" + key))
	return hex.EncodeToString(sum[:])
}
