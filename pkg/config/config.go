package config

import (
	"context"
	"errors"
	"os"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/aileon/awesome/pkg/db"
	"github.com/aileon/awesome/pkg/logger"
)

// Config is the typed view of the merged tree.
type Config struct {
	Debug   bool                `yaml:"debug" env:"DEBUG"`
	Addr    string              `yaml:"addr" env:"ADDR"`
	DB      db.Config           `yaml:"db"`
	Session SessionConfig       `yaml:"session"`
	Redis   RedisConfig         `yaml:"redis"`
	Sentry  logger.SentryConfig `yaml:"sentry"`

	tree Map
}

// SessionConfig holds the session cookie settings.
type SessionConfig struct {
	Secret     string `yaml:"secret" env:"SESSION_SECRET"`
	CookieName string `yaml:"cookieName" env:"SESSION_COOKIE_NAME"`
	MaxAge     int    `yaml:"max_age" env:"SESSION_MAX_AGE"`
}

// RedisConfig holds the optional cache backend settings.
// An empty URL keeps the cache in process memory.
type RedisConfig struct {
	URL    string `yaml:"url" env:"REDIS_URL"`
	Prefix string `yaml:"prefix" env:"REDIS_PREFIX"`
}

// Get looks up a dotted path in the merged tree, before the environment
// overlay.
func (c *Config) Get(path string) (any, bool) {
	return c.tree.Get(path)
}

// Tree returns the merged configuration tree.
func (c *Config) Tree() Map {
	return c.tree
}

// Option adds a layer to Load.
type Option func(*loader)

type loader struct {
	file     string
	override Map
	lookuper envconfig.Lookuper
}

// FromFile reads the override tree from a YAML file. An empty path is ignored.
func FromFile(path string) Option {
	return func(l *loader) {
		l.file = path
	}
}

// FromMap uses an in-memory override tree. It is merged after the file.
func FromMap(m Map) Option {
	return func(l *loader) {
		l.override = m
	}
}

// WithLookuper replaces the process environment as the last layer.
func WithLookuper(lu envconfig.Lookuper) Option {
	return func(l *loader) {
		l.lookuper = lu
	}
}

// Load builds the configuration from defaults, overrides and environment.
func Load(ctx context.Context, opts ...Option) (*Config, error) {
	l := &loader{lookuper: envconfig.OsLookuper()}
	for _, opt := range opts {
		opt(l)
	}

	tree := Defaults()
	if l.file != "" {
		override, err := readFile(l.file)
		if err != nil {
			return nil, err
		}
		tree = Merge(tree, override)
	}
	if l.override != nil {
		tree = Merge(tree, l.override)
	}

	cfg, err := decode(tree)
	if err != nil {
		return nil, err
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:           cfg,
		Lookuper:         l.lookuper,
		DefaultOverwrite: true,
	}); err != nil {
		return nil, errors.Join(ErrEnvOverlay, err)
	}
	return cfg, nil
}

func readFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Join(ErrParseFile, err)
	}
	return m, nil
}

// decode round-trips the tree through YAML to fill the typed struct.
func decode(tree Map) (*Config, error) {
	data, err := yaml.Marshal(tree)
	if err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	cfg := &Config{tree: tree}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	return cfg, nil
}
