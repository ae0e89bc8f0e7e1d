package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTL is a typed expiring key/value store. Each instance owns a single TTL
// applied to every entry; expiry is evaluated lazily at read time, so no
// background eviction goroutine runs. Safe for concurrent use.
type TTL[V any] struct {
	ttl   time.Duration
	inner *gocache.Cache
}

func NewTTL[V any](ttl time.Duration) *TTL[V] {
	// Cleanup interval 0 disables the janitor; expired entries are dropped
	// on access instead.
	return &TTL[V]{ttl: ttl, inner: gocache.New(ttl, 0)}
}

func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V
	raw, ok := c.inner.Get(key)
	if !ok {
		// The entry may still be held in expired form; sweep so Stats and
		// memory reflect the miss.
		c.inner.DeleteExpired()
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *TTL[V]) Set(key string, value V) {
	c.inner.Set(key, value, gocache.DefaultExpiration)
}

func (c *TTL[V]) Delete(key string) {
	c.inner.Delete(key)
}

func (c *TTL[V]) Clear() {
	c.inner.Flush()
}

// Size reports live (unexpired) entries only.
func (c *TTL[V]) Size() int {
	return len(c.inner.Items())
}

func (c *TTL[V]) TTL() time.Duration {
	return c.ttl
}

// Stats is the admin-facing view of one cache instance.
type Stats struct {
	Size       int     `json:"size"`
	TTLSeconds float64 `json:"ttl_seconds"`
}

func (c *TTL[V]) Stats() Stats {
	return Stats{Size: c.Size(), TTLSeconds: c.ttl.Seconds()}
}
