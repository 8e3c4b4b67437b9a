package cachemanager

import (
	"context"

	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

// ReadThroughCache builds missing values from an input with a loader.
// Failed loads are returned and never stored.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache  CacheManager[K, V]
	load   func(ctx context.Context, input I) (V, error)
	bypass bool
}

// NewReadThroughCache wraps cache with load. With bypass set every lookup
// calls load and nothing is stored.
func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	load func(ctx context.Context, input I) (V, error),
	bypass bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, load: load, bypass: bypass}
}

// Get returns the value stored under key, building it from input on a miss.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I) (V, error) {
	if r.bypass {
		return r.load(ctx, input)
	}
	if v, ok := r.cache.Get(ctx, key); ok {
		return v, nil
	}

	v, err := r.load(ctx, input)
	if err != nil {
		log.Debug(log.CatCache, "load failed", "key", key, "error", err)
		return v, err
	}
	r.cache.Set(ctx, key, v)
	return v, nil
}

// Stats reports the wrapped cache's counters.
func (r *ReadThroughCache[K, V, I]) Stats() Stats {
	return r.cache.Stats()
}
