package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces all keys written by this application.
const keyPrefix = "sunbiz:search:"

// RedisStore is a Store backed by a redis server, for deployments where
// several processes should share one result cache.
//
// Expiry is enforced server-side via key TTLs. Capacity bounds are
// delegated to the server's maxmemory policy; RedisStore does not count
// entries itself.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a store talking to the redis server at addr
// (host:port). The connection is established lazily; use Ping to verify
// reachability at startup.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Ping verifies the server is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Get returns the value stored under key, or ok=false on miss or expiry.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores data under key with the given TTL.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, keyPrefix+key, data, ttl).Err()
}

// Delete removes a value from the store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, keyPrefix+key).Err()
}

// Clear removes every key written by this application and returns the
// number of entries removed. Uses SCAN so large keyspaces are walked
// incrementally rather than blocking the server.
func (s *RedisStore) Clear(ctx context.Context) (int, error) {
	var removed int
	iter := s.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, iter.Err()
}

// Close closes the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
