package cache

import (
	"context"
	"sync"
	"time"

	"github.com/stylelens/backend/internal/domain"
)

// cacheItem holds one cached feature set with its expiration
type cacheItem struct {
	features   *domain.FeatureSet
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory feature cache with TTL support
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory feature cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Cleanup goroutine removes expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a cached feature set
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.FeatureSet, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.features, nil
}

// Set stores a feature set with the given TTL
func (c *MemoryCache) Set(ctx context.Context, key string, features *domain.FeatureSet, ttl time.Duration) error {
	if features == nil {
		return domain.ErrInvalidFeatureSet
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		features:   features,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a cached feature set
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of items in the cache
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
