// Package cache defines the advisory cache port consumed by use cases.
//
// The cache is never the system of record: a miss, an eviction or an error
// only costs latency. Callers fall back to the data store on (false, nil)
// and on error alike, and must never fail a request because of the cache.
package cache

import (
	"context"
	"time"
)

// Cache is implemented by the Redis cache store in infrastructure.
type Cache interface {
	// Get unmarshals the cached value for key into dest.
	// Returns (false, nil) on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes all keys matching a glob pattern
	// (e.g. "book:list:*").
	DeletePattern(ctx context.Context, pattern string) error
}
