package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/noon/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *MemoryCache[string] {
	t.Helper()
	c := NewMemoryCache[string](time.Minute)
	t.Cleanup(c.Close)
	return c
}

func entries[V any](c *MemoryCache[V]) int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "aple", "apple", time.Minute))

	got, err := c.Get(ctx, "aple")
	require.NoError(t, err)
	assert.Equal(t, "apple", got)
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	c := newTestCache(t)

	got, err := c.Get(context.Background(), "non-existent-key")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.Empty(t, got)
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short-ttl", "value", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, err := c.Get(ctx, "short-ttl")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Overwrite(t *testing.T) {
	c := NewMemoryCache[int](time.Minute)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "k", 2, time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, entries(c))
}

func TestMemoryCache_SweepRemovesExpired(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "old", "v", time.Millisecond))
	require.NoError(t, c.Set(ctx, "fresh", "v", time.Minute))
	time.Sleep(5 * time.Millisecond)

	c.sweep()

	assert.Equal(t, 1, entries(c))
	_, err := c.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	c := NewMemoryCache[string](time.Millisecond)
	assert.NotPanics(t, func() {
		c.Close()
		c.Close()
	})
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", id)
			assert.NoError(t, c.Set(ctx, key, key, time.Minute))
			got, err := c.Get(ctx, key)
			assert.NoError(t, err)
			assert.Equal(t, key, got)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, entries(c))
}
