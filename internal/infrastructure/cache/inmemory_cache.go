package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemoryCache implements Cache in process memory.
// Values are stored encoded so callers never share mutable state with the cache.
type InMemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewInMemoryCache creates an empty in-memory cache
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get decodes the cached value into dest
func (c *InMemoryCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && entry.isExpired(c.now()) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(entry.value, dest)
}

// Set stores value under key for ttl
func (c *InMemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: raw, expiresAt: c.now().Add(ttl)}
	return nil
}

// DeletePrefix removes every key starting with prefix
func (c *InMemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *InMemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Ensure InMemoryCache implements Cache
var _ Cache = (*InMemoryCache)(nil)
