package cachemanager

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

const (
	DefaultIdle            = 30 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// InMemoryCacheManager implements CacheManager on go-cache. A hit pushes the
// entry's expiry out by idle again.
type InMemoryCacheManager[K ~string, V any] struct {
	name  string
	idle  time.Duration
	items *gocache.Cache

	hits   atomic.Int64
	misses atomic.Int64
}

var _ CacheManager[string, int] = (*InMemoryCacheManager[string, int])(nil)

// NewInMemoryCacheManager creates a cache whose entries live idle past their
// last use. name labels the cache in log output.
func NewInMemoryCacheManager[K ~string, V any](name string, idle, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		name:  name,
		idle:  idle,
		items: gocache.New(idle, cleanupInterval),
	}
}

func (c *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	raw, found := c.items.Get(string(key))
	if !found {
		c.misses.Add(1)
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "cached value has unexpected type", "cache", c.name, "key", key)
		c.items.Delete(string(key))
		c.misses.Add(1)
		return zero, false
	}

	c.items.Set(string(key), v, c.idle)
	c.hits.Add(1)
	return v, true
}

func (c *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V) {
	c.items.Set(string(key), value, c.idle)
}

// Stats reports hit and miss counts. Entries includes expired items the
// janitor has not removed yet.
func (c *InMemoryCacheManager[K, V]) Stats() Stats {
	return Stats{
		Hits:    int(c.hits.Load()),
		Misses:  int(c.misses.Load()),
		Entries: c.items.ItemCount(),
	}
}
