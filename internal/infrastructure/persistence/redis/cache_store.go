package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshelf/internal/domain/cache"
	"github.com/xiebiao/bookshelf/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// CacheStore implements the cache port on Redis with JSON payloads.
//
// All calls go through a circuit breaker: when Redis is down the breaker
// opens and lookups fail fast, so every request pays a nanosecond check
// instead of a dial timeout. Callers already treat cache errors as misses.
type CacheStore struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewCacheStore creates the Redis-backed cache.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{
		client: client,
		breaker: circuitbreaker.New("redis-cache", circuitbreaker.Config{
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

var _ cache.Cache = (*CacheStore)(nil)

// Get fetches and unmarshals the value for key into dest.
// A miss is (false, nil); an open breaker surfaces as an error.
func (c *CacheStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	var payload []byte
	err := c.breaker.Execute(func() error {
		val, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}
		payload = val
		return nil
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "cache get failed")
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, apperrors.Wrap(err, "cache payload unmarshal failed")
	}
	return true, nil
}

func (c *CacheStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(err, "cache payload marshal failed")
	}

	err = c.breaker.Execute(func() error {
		return c.client.Set(ctx, key, payload, ttl).Err()
	})
	if err != nil {
		return apperrors.Wrap(err, "cache set failed")
	}
	return nil
}

func (c *CacheStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := c.breaker.Execute(func() error {
		return c.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		return apperrors.Wrap(err, "cache delete failed")
	}
	return nil
}

// DeletePattern removes all keys matching a glob pattern using SCAN and
// UNLINK. KEYS would block the Redis event loop on large keyspaces; UNLINK
// reclaims memory asynchronously.
func (c *CacheStore) DeletePattern(ctx context.Context, pattern string) error {
	err := c.breaker.Execute(func() error {
		iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()

		batch := make([]string, 0, 100)
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) >= 100 {
				if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(batch) > 0 {
			return c.client.Unlink(ctx, batch...).Err()
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "cache pattern delete failed")
	}
	return nil
}
