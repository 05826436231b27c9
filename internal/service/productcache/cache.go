// Package productcache is a process-local TTL cache of normalized products.
package productcache

import (
	"sync"
	"time"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// DefaultTTL is used when a non-positive TTL is configured.
const DefaultTTL = time.Hour

type key struct {
	source domain.Source
	id     string
}

type entry struct {
	product    domain.Product
	insertedAt time.Time
}

// Cache maps (source, id) to a product. Entries expire lazily: a Get past the
// TTL evicts the entry. There is no background sweep and no size bound.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[key]entry
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a Cache with a process-wide TTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[key]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached product if it was stored at most ttl ago.
func (c *Cache) Get(source domain.Source, id string) (domain.Product, bool) {
	k := key{source: source, id: id}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return domain.Product{}, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, k)
		return domain.Product{}, false
	}
	return e.product.Clone(), true
}

// Set stores p with a fresh timestamp, replacing any previous entry.
func (c *Cache) Set(source domain.Source, id string, p domain.Product) {
	k := key{source: source, id: id}
	e := entry{product: p.Clone(), insertedAt: c.now()}

	c.mu.Lock()
	c.entries[k] = e
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// TTL returns the configured time to live.
func (c *Cache) TTL() time.Duration { return c.ttl }
