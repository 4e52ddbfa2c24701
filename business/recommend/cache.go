package recommend

import (
	"context"
	"myBeautyMarket/domain"
	"sync"
	"time"
)

// Cache memoizes final recommendation lists under an immutable string key.
// Implementations must replace an entry as a whole unit; a reader never sees
// a partially written list. A miss is always safe: recomputation is
// idempotent.
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.Recommendation, bool)
	Set(ctx context.Context, key string, recs []domain.Recommendation)
	Invalidate(ctx context.Context, key string)
}

type memoryEntry struct {
	recs      []domain.Recommendation
	createdAt time.Time
}

// MemoryCache is the in-process Cache: a mutex-guarded map with per-entry
// timestamps. Eviction is passive — staleness is only checked on access.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]domain.Recommendation, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.createdAt) >= c.ttl {
		// expired entries are overwritten by the next Set, not swept
		return nil, false
	}

	return entry.recs, true
}

func (c *MemoryCache) Set(_ context.Context, key string, recs []domain.Recommendation) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{recs: recs, createdAt: c.now()}
	c.mu.Unlock()
}

func (c *MemoryCache) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
