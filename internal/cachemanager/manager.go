// Package cachemanager provides a small generic caching layer used to
// keep parsed content documents warm between catalog rebuilds.
package cachemanager

import "time"

// CacheManager is the caching contract the loader depends on.
type CacheManager[K comparable, V any] interface {
	Get(key K) (V, bool)
	GetWithRefresh(key K, ttl time.Duration) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(keys ...K)
	Flush()
}
