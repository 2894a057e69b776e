package adapters

import (
	"context"
	"fmt"

	"courier-rates/internal/core/cache"
	"courier-rates/internal/core/config"
	"courier-rates/internal/core/database"
	"courier-rates/internal/core/logger"
	"courier-rates/internal/features/rates/ports"

	"go.uber.org/zap"
)

const cachePrefix = "courier-rates:"

// OpenRepository builds the rate store selected by RATE_STORE, wrapped in the
// Redis cache when REDIS_URL is set. The returned func releases connections.
func OpenRepository(ctx context.Context, cfg *config.AppConfig) (ports.RateRepository, func(), error) {
	var (
		repo    ports.RateRepository
		closers []func() error
	)

	switch cfg.Rates.Store {
	case config.StorePostgres:
		db, err := database.Open(ctx, cfg.Database, cfg.Environment)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() error { return database.Close(db) })

		store := NewGormStore(db)
		if cfg.Database.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				_ = database.Close(db)
				return nil, nil, err
			}
		}
		repo = store
	default:
		repo = NewMemoryStore()
	}

	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedisAdapter(cfg.Redis.URL, cachePrefix)
		if err != nil {
			for _, c := range closers {
				_ = c()
			}
			return nil, nil, fmt.Errorf("failed to create cache: %w", err)
		}
		if err := rc.Ping(ctx); err != nil {
			logger.Get().Warn("Redis unreachable, rate lookups will read the store until it recovers", zap.Error(err))
		}
		closers = append(closers, rc.Close)
		repo = NewCachedStore(repo, rc, cfg.Rates.CacheTTL)
	}

	logger.Get().Info("Rate store ready",
		zap.String("store", cfg.Rates.Store),
		zap.Bool("cached", cfg.Redis.URL != ""),
	)

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Get().Warn("Failed to close rate store", zap.Error(err))
			}
		}
	}
	return repo, closeAll, nil
}
