package tripsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/tripsearch/internal/db"
	dbRedis "github.com/kailas-cloud/tripsearch/internal/db/redis"
	"github.com/kailas-cloud/tripsearch/internal/db/sqlstore"
	"github.com/kailas-cloud/tripsearch/internal/domain"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/request"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/result"
	"github.com/kailas-cloud/tripsearch/internal/repository/catalog"
	healthuc "github.com/kailas-cloud/tripsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/tripsearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped out in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, int)
	Suggestions(ctx context.Context, query string, limit int) []string
}

// Client is the tripsearch SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the catalog store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New(
			"tripsearch: catalog store required (use WithPostgres, WithMySQL, WithSQLite or WithRedis)",
		)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("tripsearch: %w: %w", domain.ErrStoreUnavailable, err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case db.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.addrs,
			Password:  cfg.password,
			KeyPrefix: cfg.keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("tripsearch: create redis store: %w", err)
		}
		return s, nil
	case db.DriverPostgres, db.DriverMySQL, db.DriverSQLite:
		s, err := sqlstore.NewStore(sqlstore.Config{
			Driver: cfg.driver,
			DSN:    cfg.dsn,
		})
		if err != nil {
			return nil, fmt.Errorf("tripsearch: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("tripsearch: %w: %q", db.ErrUnknownDriver, cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := catalog.New(store, cfg.maxPerCategory)
	return &Client{
		store:     store,
		searchSvc: searchuc.New(repo, cfg.fetchTimeout),
		healthSvc: healthuc.New(store, 0),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks catalog store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	op := operation{name: "ping", start: time.Now(), matches: -1}
	defer func() {
		op.err = err
		c.obs.observe(op)
	}()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}
