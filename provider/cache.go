package provider

import (
	"sync"

	"github.com/ByLCY/glyphflow/layout"
)

type cacheKey struct {
	r    rune
	size float64
}

// Cache memoizes glyph metrics per (rune, size). It is concurrent-safe and
// unbounded: a paragraph only ever touches the glyphs of its own text.
type Cache struct {
	inner layout.MetricsProvider

	mu      sync.RWMutex
	entries map[cacheKey]layout.GlyphMetrics
	hits    uint64
	misses  uint64
}

var _ layout.MetricsProvider = (*Cache)(nil)

// NewCache wraps inner. Wrapping a *Cache returns it unchanged.
func NewCache(inner layout.MetricsProvider) *Cache {
	if c, ok := inner.(*Cache); ok {
		return c
	}
	return &Cache{inner: inner, entries: make(map[cacheKey]layout.GlyphMetrics, 128)}
}

func (c *Cache) Measure(r rune, fontSize float64) layout.GlyphMetrics {
	key := cacheKey{r: r, size: fontSize}
	c.mu.RLock()
	m, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return m
	}

	m = c.inner.Measure(r, fontSize)
	c.mu.Lock()
	c.entries[key] = m
	c.misses++
	c.mu.Unlock()
	return m
}

// Stats returns the number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
