package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache implements Cache with in-process storage.
type MemoryCache struct {
	data map[string]memoryCacheEntry
	mu   sync.RWMutex
}

type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryCacheEntry),
	}
}

// Get retrieves an entry. Expired entries read as a miss.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.data[key]
	if !ok {
		return nil, nil // Cache miss
	}

	if time.Now().After(entry.expiresAt) {
		return nil, nil // Expired
	}

	return entry.value, nil
}

// Set stores an entry with the given TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = memoryCacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
	return nil
}
