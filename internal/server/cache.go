package server

import (
	"context"
	"sync"
	"time"

	"github.com/mj1618/focusprobe/internal/model"
	"github.com/mj1618/focusprobe/internal/platform"
)

// cacheKey identifies a unique tree read scope.
type cacheKey struct {
	App      string
	WindowID int
	PID      int
	Depth    int
}

// cacheEntry holds a cached element tree with its timestamp.
type cacheEntry struct {
	elements  []model.Element
	timestamp time.Time
}

// TreeCache is a platform.Reader that serves element trees from a TTL
// cache. Window listings always go to the underlying reader so new popups
// show up at once. It also wraps an IdleWaiter and drops every entry once
// the UI settles, since idle means the trees may have changed.
type TreeCache struct {
	reader platform.Reader
	idle   platform.IdleWaiter
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

// NewTreeCache creates a cache in front of reader. A ttl of 0 disables caching.
func NewTreeCache(reader platform.Reader, idle platform.IdleWaiter, ttl time.Duration) *TreeCache {
	return &TreeCache{
		reader:  reader,
		idle:    idle,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[cacheKey]cacheEntry),
	}
}

// ListWindows implements platform.Reader without caching.
func (c *TreeCache) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	return c.reader.ListWindows(opts)
}

// ReadElements returns cached elements if within TTL, otherwise reads fresh.
// Role filtering is applied after the cache so differently filtered reads
// share an entry.
func (c *TreeCache) ReadElements(opts platform.ReadOptions) ([]model.Element, error) {
	if c.ttl == 0 {
		return c.reader.ReadElements(opts)
	}

	key := cacheKey{App: opts.App, WindowID: opts.WindowID, PID: opts.PID, Depth: opts.Depth}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		c.mu.Unlock()
		return model.FilterElements(entry.elements, opts.Roles), nil
	}
	c.mu.Unlock()

	unfiltered := opts
	unfiltered.Roles = nil
	elements, err := c.reader.ReadElements(unfiltered)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{elements: elements, timestamp: c.now()}
	c.mu.Unlock()

	return model.FilterElements(elements, opts.Roles), nil
}

// WaitForIdle implements platform.IdleWaiter and invalidates the cache.
func (c *TreeCache) WaitForIdle(ctx context.Context, timeout time.Duration) error {
	defer c.InvalidateAll()
	if c.idle == nil {
		return nil
	}
	return c.idle.WaitForIdle(ctx, timeout)
}

// InvalidateAll clears the entire cache.
func (c *TreeCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// Len returns the number of cached trees.
func (c *TreeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
