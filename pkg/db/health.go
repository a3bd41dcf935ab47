package db

import (
	"context"
	"errors"
)

// Healthcheck returns a readiness probe for the pool.
func Healthcheck(p *Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if p == nil {
			return ErrHealthcheckFailed
		}
		if err := p.db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the pool.
func Shutdown(p *Pool) func(context.Context) error {
	return func(context.Context) error {
		return p.Close()
	}
}
