package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/infra"
	"github.com/amirasaad/fintrack/infra/cache"
	infra_repository "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/app"
	pkgcache "github.com/amirasaad/fintrack/pkg/cache"
	"github.com/amirasaad/fintrack/pkg/config"
)

// memoryCacheSweep is how often expired entries leave the in-memory session cache.
const memoryCacheSweep = time.Minute

// InitializeDependencies initializes all the application dependencies.
// The returned cleanup releases the database pool and the session cache.
func InitializeDependencies(ctx context.Context, cfg *config.App) (
	deps *app.Deps,
	cleanup func(),
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	if err = infra.AutoMigrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		return nil, nil, fmt.Errorf("auto migrate: %w", err)
	}
	deps.Uow = infra_repository.NewUoW(db)

	sessionCache, closeCache, err := newSessionCache(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, nil, err
	}
	deps.SessionCache = sessionCache

	cleanup = func() {
		closeCache()
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database", "error", err)
			}
		}
	}
	return deps, cleanup, nil
}

// newSessionCache uses redis when a URL is configured and the server answers
// a ping, and an in-memory cache otherwise. A malformed URL is an error.
func newSessionCache(
	ctx context.Context,
	cfg *config.Redis,
	logger *slog.Logger,
) (pkgcache.SessionCache, func(), error) {
	if cfg == nil || cfg.URL == "" {
		logger.Info("Using in-memory session cache")
		return newMemoryCache(ctx)
	}

	rc, err := cache.NewRedisSessionCache(cfg.URL, cfg.KeyPrefix, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis session cache: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		_ = rc.Close()
		logger.Warn("Redis unreachable, using in-memory session cache", "error", err)
		return newMemoryCache(ctx)
	}
	logger.Info("Using redis session cache", "prefix", cfg.KeyPrefix)
	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Warn("Failed to close redis", "error", err)
		}
	}, nil
}

func newMemoryCache(ctx context.Context) (pkgcache.SessionCache, func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	return cache.NewMemorySessionCache(ctx, memoryCacheSweep), cancel, nil
}
