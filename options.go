package gutensearch

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver           string
	addrs            []string
	password         string
	sqlitePath       string
	datalakePath     string
	defaultLimit     int
	readinessTimeout time.Duration
	logger           *zap.Logger
}

// WithRedis selects the redis backend.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithSQLite selects the embedded sqlite backend. This is the default,
// with path "gutensearch.db".
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.driver = "sqlite"
		c.sqlitePath = path
	}
}

// WithDatalake sets the directory holding book header and body files.
func WithDatalake(path string) Option {
	return func(c *clientConfig) {
		c.datalakePath = path
	}
}

// WithDefaultLimit caps result lists when a search does not pass a limit.
func WithDefaultLimit(limit int) Option {
	return func(c *clientConfig) {
		c.defaultLimit = limit
	}
}

// WithReadinessTimeout bounds the startup wait for the storage backend.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.readinessTimeout = d
		}
	}
}

// WithLogger sets the logger used by the indexing pipeline.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
