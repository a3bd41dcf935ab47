package db

import "time"

// Config holds connection parameters for every supported driver.
// Fields carry yaml tags for the layered config file and env tags for the
// environment overlay.
type Config struct {
	// Driver selects the dialect: postgres, mysql or sqlite.
	Driver string `yaml:"driver" env:"DB_DRIVER"`

	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"db" env:"DB_NAME"`

	// Path is the sqlite database file. Empty means an in-memory database.
	Path string `yaml:"path" env:"DB_PATH"`

	MigrationsTable string `yaml:"migrations_table" env:"DB_MIGRATIONS_TABLE"`

	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MinConns        int           `yaml:"min_conns" env:"DB_MIN_CONNS"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DB_MAX_CONN_LIFETIME"`

	// Startup retries use a linear backoff: attempt n waits n*RetryInterval.
	RetryAttempts int           `yaml:"retry_attempts" env:"DB_RETRY_ATTEMPTS"`
	RetryInterval time.Duration `yaml:"retry_interval" env:"DB_RETRY_INTERVAL"`
}

const defaultMigrationsTable = "schema_migrations"
