// Package cachemanager keeps values that are costly to build, such as
// compiled search patterns, for a sliding period after their last use.
package cachemanager

import (
	"context"
)

// CacheManager is a keyed store whose entries expire a fixed period after
// they were last read or written.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V)
	Stats() Stats
}

// Stats counts lookups since the cache was created.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}
