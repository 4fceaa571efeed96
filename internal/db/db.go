package db

import (
	"context"
	"time"
)

// Store is the catalog database facade used by the search engine.
// Implementations are read-only.
type Store interface {
	Pinger
	Finder
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Finder fetches filtered, capped row sets from a catalog table.
type Finder interface {
	Find(ctx context.Context, q *FindQuery) ([]Row, error)
}

// Driver names accepted by the store constructors.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)
