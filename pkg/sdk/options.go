package tripsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "postgres", "mysql", "sqlite" or "redis"
	dsn       string
	addrs     []string
	password  string
	keyPrefix string

	fetchTimeout   time.Duration
	maxPerCategory int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPostgres reads the catalog from PostgreSQL.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "postgres"
		c.dsn = dsn
	})
}

// WithMySQL reads the catalog from MySQL.
func WithMySQL(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "mysql"
		c.dsn = dsn
	})
}

// WithSQLite reads the catalog from a SQLite database file.
func WithSQLite(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sqlite"
		c.dsn = dsn
	})
}

// WithRedis reads the catalog from Redis JSON documents indexed by the query engine.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix overrides the Redis key prefix. Default: "tripsearch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithFetchTimeout bounds each per-category catalog fetch.
// Default: 5s.
func WithFetchTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetchTimeout = d
	})
}

// WithMaxPerCategory caps the candidate rows fetched per category.
// Default and upper bound: 100.
func WithMaxPerCategory(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxPerCategory = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
