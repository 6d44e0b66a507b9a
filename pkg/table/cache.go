package table

import (
	"sync"
	"time"
)

type cacheEntry struct {
	record    any
	expiresAt time.Time // zero means no expiry
}

// Cache stores raw records by record id. It is safe for concurrent use.
type Cache interface {
	// Get returns the cached record. ok is false when the entry doesn't
	// exist or has expired.
	Get(id string) (record any, ok bool)

	// Set stores a record.
	Set(id string, record any)

	// Delete drops a record.
	Delete(id string)
}

// CacheImpl is the default in-memory cache with optional TTL, guarded by a
// sync.RWMutex. It grows unbounded within its TTL window.
type CacheImpl struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
	ttl   time.Duration // 0 means no expiry
	now   func() time.Time
}

// CacheOption configures a CacheImpl.
type CacheOption func(*CacheImpl)

// WithTTL sets the time-to-live for cache entries. A TTL of 0 (default)
// keeps entries until they are deleted or the cache is cleared.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CacheImpl) {
		c.ttl = ttl
	}
}

// NewCache creates an empty record cache.
func NewCache(opts ...CacheOption) *CacheImpl {
	c := &CacheImpl{
		items: make(map[string]cacheEntry),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached record for id.
func (c *CacheImpl) Get(id string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.items[id]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.expired(entry) {
		c.expire(id)
		return nil, false
	}

	return entry.record, true
}

func (c *CacheImpl) expired(e cacheEntry) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}

// expire drops id if it is still expired. A Set may have replaced the entry
// since the read lock was released.
func (c *CacheImpl) expire(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.items[id]; ok && c.expired(cur) {
		delete(c.items, id)
	}
}

// Set stores record under id.
func (c *CacheImpl) Set(id string, record any) {
	entry := cacheEntry{record: record}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.items[id] = entry
	c.mu.Unlock()
}

// Delete drops id from the cache.
func (c *CacheImpl) Delete(id string) {
	c.mu.Lock()
	delete(c.items, id)
	c.mu.Unlock()
}

// Size returns the number of entries in the cache.
func (c *CacheImpl) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all entries from the cache.
func (c *CacheImpl) Clear() {
	c.mu.Lock()
	c.items = make(map[string]cacheEntry)
	c.mu.Unlock()
}

var _ Cache = (*CacheImpl)(nil)
