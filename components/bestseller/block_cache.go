package bestseller

import (
	"sync"
	"time"
)

// CachedBlock is rendered widget output plus the identities it depends on.
type CachedBlock struct {
	HTML       string
	Identities []string
}

// RenderCache memoizes rendered widget HTML so repeated renders are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (CachedBlock, error)) (CachedBlock, bool, error)
	InvalidateTags(tags ...string) int
}

// BlockCache is an in-memory TTL cache for rendered blocks, invalidated by identity tag.
type BlockCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedEntry
}

type cachedEntry struct {
	block   CachedBlock
	expires time.Time
}

// NewBlockCache builds a cache with the provided TTL. A non-positive TTL disables caching.
func NewBlockCache(ttl time.Duration) *BlockCache {
	return &BlockCache{
		ttl:     ttl,
		entries: make(map[string]cachedEntry),
	}
}

// GetOrRender returns a cached entry or renders/stores a new one.
// The boolean result reports a cache hit.
func (c *BlockCache) GetOrRender(key string, render func() (CachedBlock, error)) (CachedBlock, bool, error) {
	if block, ok := c.get(key); ok {
		return block, true, nil
	}
	block, err := render()
	if err != nil {
		return CachedBlock{}, false, err
	}
	c.set(key, block)
	return block, false, nil
}

// InvalidateTags drops every entry tagged with one of the identities and returns the count.
func (c *BlockCache) InvalidateTags(tags ...string) int {
	if c == nil || len(tags) == 0 {
		return 0
	}
	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wanted[tag] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, entry := range c.entries {
		for _, identity := range entry.block.Identities {
			if _, ok := wanted[identity]; ok {
				delete(c.entries, key)
				removed++
				break
			}
		}
	}
	return removed
}

// Len returns the number of live entries.
func (c *BlockCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *BlockCache) get(key string) (CachedBlock, bool) {
	if c == nil || c.ttl <= 0 {
		return CachedBlock{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return CachedBlock{}, false
	}
	return entry.block, true
}

func (c *BlockCache) set(key string, block CachedBlock) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedEntry{
		block:   block,
		expires: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

type noopRenderCache struct{}

func (noopRenderCache) GetOrRender(_ string, render func() (CachedBlock, error)) (CachedBlock, bool, error) {
	block, err := render()
	return block, false, err
}

func (noopRenderCache) InvalidateTags(...string) int { return 0 }
