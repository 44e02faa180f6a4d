package cmd

import (
	"sync"
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
)

// mcpCacheKey identifies a unique session scope for tree snapshots.
type mcpCacheKey struct {
	Server  string
	Session int
}

// mcpCacheEntry holds a cached widget tree with its timestamp.
type mcpCacheEntry struct {
	root      *model.Widget
	timestamp time.Time
}

// mcpTreeCache provides a TTL-based cache for widget tree snapshots, so a
// burst of find/tree tool calls doesn't serialize the tree once per call.
type mcpTreeCache struct {
	mu      sync.Mutex
	entries map[mcpCacheKey]mcpCacheEntry
	ttl     time.Duration
}

// newMCPTreeCache creates a new cache. A ttl of 0 disables caching.
func newMCPTreeCache(ttl time.Duration) *mcpTreeCache {
	return &mcpTreeCache{
		entries: make(map[mcpCacheKey]mcpCacheEntry),
		ttl:     ttl,
	}
}

// tree returns the cached snapshot for key if within TTL, otherwise fetches
// a fresh one.
func (c *mcpTreeCache) tree(key mcpCacheKey, fetch func() (*model.Widget, error)) (*model.Widget, error) {
	if c.ttl == 0 {
		return fetch()
	}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.timestamp) < c.ttl {
		root := entry.root
		c.mu.Unlock()
		return root, nil
	}
	c.mu.Unlock()

	root, err := fetch()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = mcpCacheEntry{root: root, timestamp: time.Now()}
	c.mu.Unlock()

	return root, nil
}

// invalidateSession removes the cache entry for one session scope.
func (c *mcpTreeCache) invalidateSession(key mcpCacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// invalidateAll clears the entire cache.
func (c *mcpTreeCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[mcpCacheKey]mcpCacheEntry)
}
