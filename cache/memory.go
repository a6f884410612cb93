// Package cache provides read-through caches for station preferences.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/CreativeUnicorns/stationprefs"
)

// MemoryCache is an in-process cache with per-item expiry.
type MemoryCache struct {
	items    *ttlcache.Cache[string, interface{}]
	mu       sync.RWMutex
	closed   bool
	stopOnce sync.Once
}

// NewMemoryCache starts the expiry loop. Call Close to stop it.
func NewMemoryCache() *MemoryCache {
	items := ttlcache.New[string, interface{}](
		ttlcache.WithDisableTouchOnHit[string, interface{}](),
	)
	go items.Start()

	return &MemoryCache{items: items}
}

// Get returns stationprefs.ErrNotFound for missing and expired keys.
func (c *MemoryCache) Get(_ context.Context, key string) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, stationprefs.ErrCacheUnavailable
	}

	it := c.items.Get(key)
	if it == nil {
		return nil, stationprefs.ErrNotFound
	}
	return it.Value(), nil
}

// Set stores value for ttl. A ttl of zero or less never expires.
func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return stationprefs.ErrCacheUnavailable
	}

	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	c.items.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// Len reports the number of live items.
func (c *MemoryCache) Len() int {
	return c.items.Len()
}

// Close stops the expiry loop and drops every item. Later calls are no-ops.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		c.items.Stop()
		c.items.DeleteAll()
	})
	return nil
}
