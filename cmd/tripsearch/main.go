package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tripsearch/internal/config"
	"github.com/kailas-cloud/tripsearch/internal/db"
	dbRedis "github.com/kailas-cloud/tripsearch/internal/db/redis"
	"github.com/kailas-cloud/tripsearch/internal/db/sqlstore"
	logpkg "github.com/kailas-cloud/tripsearch/internal/logger"
	"github.com/kailas-cloud/tripsearch/internal/metrics"
	"github.com/kailas-cloud/tripsearch/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/tripsearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/tripsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/tripsearch/internal/usecase/search"
	"github.com/kailas-cloud/tripsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tripsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	store, err := openStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()

	catalogRepo := catalog.New(store, cfg.Search.MaxPerCategory)
	searchSvc := searchuc.New(catalogRepo, cfg.Search.FetchTimeout())
	healthSvc := healthuc.New(store, 0)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger, chiTransport.Options{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		SuggestionLimit: cfg.Search.SuggestionLimit,
	})
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{APIKeys: cfg.Auth.APIKeys})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore creates the catalog store for the configured driver.
func openStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case db.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Addrs,
			Username:  cfg.Username,
			Password:  cfg.Password,
			DB:        cfg.DB,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		return s, nil
	case db.DriverPostgres, db.DriverMySQL, db.DriverSQLite:
		s, err := sqlstore.NewStore(sqlstore.Config{
			Driver:       cfg.Driver,
			DSN:          cfg.DSN,
			MaxOpenConns: cfg.MaxOpenConns,
		})
		if err != nil {
			return nil, fmt.Errorf("sql store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", db.ErrUnknownDriver, cfg.Driver)
	}
}
