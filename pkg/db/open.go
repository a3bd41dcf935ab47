package db

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Open connects to the database described by cfg, retrying transient
// failures with a linear backoff.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Pool, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}

	switch dialect {
	case Postgres:
		return openPostgres(ctx, cfg, opts...)
	case MySQL:
		return openMySQL(ctx, cfg, opts...)
	default:
		return openSQLite(ctx, cfg, opts...)
	}
}

func openPostgres(ctx context.Context, cfg Config, opts ...Option) (*Pool, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	pgCfg, err := pgxpool.ParseConfig(dsn.String())
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		pgCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MinConns > 0 {
		pgCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnIdleTime > 0 {
		pgCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		pgCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	var pool *pgxpool.Pool
	err = retry(ctx, cfg.RetryAttempts, cfg.RetryInterval, func() error {
		pp, err := pgxpool.NewWithConfig(ctx, pgCfg)
		if err != nil {
			return err
		}
		if err := pp.Ping(ctx); err != nil {
			pp.Close()
			return err
		}
		pool = pp
		return nil
	})
	if err != nil {
		return nil, err
	}

	p := New(stdlib.OpenDBFromPool(pool), Postgres, opts...)
	p.closers = append(p.closers, pool.Close)
	return p, nil
}

func openMySQL(ctx context.Context, cfg Config, opts ...Option) (*Pool, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name

	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}

	sqlDB := sql.OpenDB(connector)
	applyPoolLimits(sqlDB, cfg)
	if err := retry(ctx, cfg.RetryAttempts, cfg.RetryInterval, func() error {
		return sqlDB.PingContext(ctx)
	}); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return New(sqlDB, MySQL, opts...), nil
}

func openSQLite(ctx context.Context, cfg Config, opts ...Option) (*Pool, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	// One connection: an in-memory database lives and dies with its
	// connection, and sqlite allows a single writer anyway.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if _, err := sqlDB.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	return New(sqlDB, SQLite, opts...), nil
}

func applyPoolLimits(sqlDB *sql.DB, cfg Config) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MinConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MinConns)
	}
	if cfg.MaxConnIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	}
	if cfg.MaxConnLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)
	}
}

// retry calls fn up to attempts times; attempt n waits n*interval before the
// next try.
func retry(ctx context.Context, attempts int, interval time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error
	for i := range attempts {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * interval):
		}
	}
	return errors.Join(ErrFailedToOpenDBConnection, lastErr)
}
