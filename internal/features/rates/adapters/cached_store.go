package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"courier-rates/internal/core/cache"
	"courier-rates/internal/core/logger"
	"courier-rates/internal/features/rates/domain"
	"courier-rates/internal/features/rates/ports"

	"go.uber.org/zap"
)

const slabCacheKeyPrefix = "slabs:"

// CachedStore answers range queries from a cached copy of the whole slab run.
// Cache failures fall back to the wrapped store; writes invalidate the touched runs.
type CachedStore struct {
	store ports.RateRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedStore wraps store with a read-through cache.
func NewCachedStore(store ports.RateRepository, c cache.Cache, ttl time.Duration) *CachedStore {
	return &CachedStore{
		store: store,
		cache: c,
		ttl:   ttl,
	}
}

func cacheKey(key domain.SlabKey) string {
	return slabCacheKeyPrefix + key.String()
}

// Slabs returns the run from the cache, loading it from the store on a miss.
func (s *CachedStore) Slabs(ctx context.Context, key domain.SlabKey) ([]domain.RateSlab, error) {
	ck := cacheKey(key)

	data, err := s.cache.Get(ctx, ck)
	if err == nil {
		var run []domain.RateSlab
		if err := json.Unmarshal(data, &run); err == nil {
			return run, nil
		}
		logger.Get().Warn("Discarding corrupt slab cache entry", zap.String("key", ck))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Get().Warn("Slab cache unavailable, reading store", zap.String("key", ck), zap.Error(err))
	}

	run, err := s.store.Slabs(ctx, key)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(run); err == nil {
		if err := s.cache.Set(ctx, ck, data, s.ttl); err != nil {
			logger.Get().Warn("Failed to cache slab run", zap.String("key", ck), zap.Error(err))
		}
	}
	return run, nil
}

// Exact returns the row at weightSlab.
func (s *CachedStore) Exact(ctx context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error) {
	run, err := s.Slabs(ctx, key)
	if err != nil {
		return nil, err
	}
	if i := search(run, weightSlab); i < len(run) && run[i].WeightSlab == weightSlab {
		return &run[i], nil
	}
	return nil, nil
}

// NearestBelow returns the largest slab strictly below weightSlab.
func (s *CachedStore) NearestBelow(ctx context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error) {
	run, err := s.Slabs(ctx, key)
	if err != nil {
		return nil, err
	}
	if i := search(run, weightSlab); i > 0 {
		return &run[i-1], nil
	}
	return nil, nil
}

// NearestAbove returns the smallest slab strictly above weightSlab.
func (s *CachedStore) NearestAbove(ctx context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error) {
	run, err := s.Slabs(ctx, key)
	if err != nil {
		return nil, err
	}
	i := search(run, weightSlab)
	if i < len(run) && run[i].WeightSlab == weightSlab {
		i++
	}
	if i < len(run) {
		return &run[i], nil
	}
	return nil, nil
}

// Upsert writes through to the store and invalidates every touched run.
func (s *CachedStore) Upsert(ctx context.Context, slabs []domain.RateSlab) (int, error) {
	n, err := s.store.Upsert(ctx, slabs)
	if err != nil {
		return n, err
	}

	seen := make(map[domain.SlabKey]struct{})
	var keys []string
	for _, slab := range slabs {
		k := slab.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, cacheKey(k))
	}
	s.invalidate(ctx, keys...)
	return n, nil
}

// DeleteScope deletes the run from the store and the cache.
func (s *CachedStore) DeleteScope(ctx context.Context, key domain.SlabKey) error {
	if err := s.store.DeleteScope(ctx, key); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKey(key))
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Get().Warn("Failed to invalidate slab cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
