package adapters

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"courier-rates/internal/core/cache"
	"courier-rates/internal/features/rates/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records how often the run is read from the backing store.
type countingStore struct {
	*MemoryStore
	reads atomic.Int32
}

func (c *countingStore) Slabs(ctx context.Context, key domain.SlabKey) ([]domain.RateSlab, error) {
	c.reads.Add(1)
	return c.MemoryStore.Slabs(ctx, key)
}

func newCachedStore(t *testing.T) (*CachedStore, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "rates:")
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	backing := &countingStore{MemoryStore: NewMemoryStore()}
	_, err = backing.MemoryStore.Upsert(context.Background(), rows(northNorth, 1, 50, 2, 80, 5, 130))
	require.NoError(t, err)

	return NewCachedStore(backing, adapter, time.Minute), backing, mr
}

func TestCachedStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	store, backing, mr := newCachedStore(t)

	exact, err := store.Exact(ctx, northNorth, 2)
	require.NoError(t, err)
	require.NotNil(t, exact)
	assert.Equal(t, 80.0, exact.Rate)

	below, err := store.NearestBelow(ctx, northNorth, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, below.WeightSlab)

	above, err := store.NearestAbove(ctx, northNorth, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, above.WeightSlab)

	none, err := store.NearestAbove(ctx, northNorth, 5)
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.Equal(t, int32(1), backing.reads.Load())
	assert.True(t, mr.Exists("rates:slabs:default:North:North"))
	assert.Equal(t, time.Minute, mr.TTL("rates:slabs:default:North:North"))
}

func TestCachedStore_WriteInvalidates(t *testing.T) {
	ctx := context.Background()
	store, backing, mr := newCachedStore(t)

	_, err := store.Slabs(ctx, northNorth)
	require.NoError(t, err)
	require.True(t, mr.Exists("rates:slabs:default:North:North"))

	_, err = store.Upsert(ctx, rows(northNorth, 2, 85))
	require.NoError(t, err)
	assert.False(t, mr.Exists("rates:slabs:default:North:North"))

	exact, err := store.Exact(ctx, northNorth, 2)
	require.NoError(t, err)
	assert.Equal(t, 85.0, exact.Rate)
	assert.Equal(t, int32(2), backing.reads.Load())

	require.NoError(t, store.DeleteScope(ctx, northNorth))
	exact, err = store.Exact(ctx, northNorth, 2)
	require.NoError(t, err)
	assert.Nil(t, exact)
}

func TestCachedStore_CacheDownFallsBack(t *testing.T) {
	ctx := context.Background()
	store, backing, mr := newCachedStore(t)

	mr.SetError("ERR cache offline")

	exact, err := store.Exact(ctx, northNorth, 1)
	require.NoError(t, err)
	require.NotNil(t, exact)
	assert.Equal(t, 50.0, exact.Rate)

	_, err = store.Exact(ctx, northNorth, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), backing.reads.Load())
}

func TestCachedStore_CorruptEntryIsReloaded(t *testing.T) {
	ctx := context.Background()
	store, backing, mr := newCachedStore(t)

	require.NoError(t, mr.Set("rates:slabs:default:North:North", "{not json"))

	slabs, err := store.Slabs(ctx, northNorth)
	require.NoError(t, err)
	assert.Len(t, slabs, 3)
	assert.Equal(t, int32(1), backing.reads.Load())
}
