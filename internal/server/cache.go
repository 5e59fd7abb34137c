package server

import (
	"context"
	"sync"
	"time"

	"github.com/hopngo/a11y-audit/internal/model"
)

// cacheKey identifies one page.
type cacheKey struct {
	Backend string
	Target  string
}

// cacheEntry holds a cached snapshot with its timestamp.
type cacheEntry struct {
	snap      *model.Snapshot
	timestamp time.Time
}

// SnapshotCache provides a TTL-based cache of DOM snapshots so successive
// DOM-only tools on the same page do not reload it.
type SnapshotCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewSnapshotCache creates a new cache. A ttl of 0 disables caching.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Snapshot returns the cached snapshot if within TTL, otherwise calls load
// and caches its result. Errors are not cached.
func (c *SnapshotCache) Snapshot(ctx context.Context, backend, target string, load func(context.Context) (*model.Snapshot, error)) (*model.Snapshot, error) {
	if c.ttl == 0 {
		return load(ctx)
	}

	key := cacheKey{Backend: backend, Target: target}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		snap := entry.snap
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	snap, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{snap: snap, timestamp: c.now()}
	c.mu.Unlock()

	return snap, nil
}

// Invalidate removes the entry for one page.
func (c *SnapshotCache) Invalidate(backend, target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey{Backend: backend, Target: target})
}

// InvalidateAll clears the entire cache.
func (c *SnapshotCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// Len returns the number of cached pages.
func (c *SnapshotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
