package cache

import (
	"context"
	"sync"
	"time"

	"github.com/noon/backend/internal/domain"
)

const defaultCleanupInterval = 10 * time.Minute

// entry represents a single item in the cache with expiration
type entry[V any] struct {
	value      V
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support
type MemoryCache[V any] struct {
	data  map[string]entry[V]
	mutex sync.RWMutex
	done  chan struct{}
	once  sync.Once
}

// NewMemoryCache creates a new in-memory cache that sweeps expired
// entries every cleanupInterval. A non-positive interval uses 10 minutes.
func NewMemoryCache[V any](cleanupInterval time.Duration) *MemoryCache[V] {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	c := &MemoryCache[V]{
		data: make(map[string]entry[V]),
		done: make(chan struct{}),
	}
	go c.cleanupExpired(cleanupInterval)

	return c
}

// Get retrieves a value from the cache
func (c *MemoryCache[V]) Get(ctx context.Context, key string) (V, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var zero V
	item, exists := c.data[key]
	if !exists || time.Now().After(item.expiration) {
		return zero, domain.ErrCacheMiss
	}

	return item.value, nil
}

// Set stores a value in the cache with TTL
func (c *MemoryCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = entry[V]{
		value:      value,
		expiration: time.Now().Add(ttl),
	}
	return nil
}

// Close stops the background sweeper. It is safe to call more than once.
func (c *MemoryCache[V]) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *MemoryCache[V]) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *MemoryCache[V]) sweep() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, item := range c.data {
		if now.After(item.expiration) {
			delete(c.data, key)
		}
	}
}
