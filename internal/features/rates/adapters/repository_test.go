package adapters

import (
	"context"
	"testing"
	"time"

	"courier-rates/internal/core/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		cfg := &config.AppConfig{Rates: config.RatesConfig{Store: config.StoreMemory}}
		repo, closeFn, err := OpenRepository(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &MemoryStore{}, repo)
	})

	t.Run("MemoryWithCache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.AppConfig{
			Rates: config.RatesConfig{Store: config.StoreMemory, CacheTTL: time.Minute},
			Redis: config.RedisConfig{URL: "redis://" + mr.Addr()},
		}
		repo, closeFn, err := OpenRepository(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()
		require.IsType(t, &CachedStore{}, repo)

		_, err = repo.Upsert(ctx, DefaultGrid())
		require.NoError(t, err)
		slabs, err := repo.Slabs(ctx, northNorth)
		require.NoError(t, err)
		assert.Len(t, slabs, len(DefaultWeightSlabs))
		assert.True(t, mr.Exists(cachePrefix+"slabs:default:North:North"))
	})

	t.Run("BadRedisURL", func(t *testing.T) {
		cfg := &config.AppConfig{
			Rates: config.RatesConfig{Store: config.StoreMemory},
			Redis: config.RedisConfig{URL: "not-a-url"},
		}
		_, _, err := OpenRepository(ctx, cfg)
		assert.Error(t, err)
	})
}
