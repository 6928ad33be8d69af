package cache

import (
	"context"
	"strconv"
	"time"
)

// Fixed cache parameters. These are design constants rather than runtime
// configuration: the lookup results they guard are short-lived by nature,
// and the store is deliberately small.
const (
	// DefaultTTL is how long a stored result sequence stays valid.
	DefaultTTL = 5 * time.Minute

	// DefaultCapacity is the maximum number of entries the memory store
	// holds before evicting the oldest one.
	DefaultCapacity = 200
)

// Store is a key→value store with per-entry expiry.
//
// Implementations must never return an expired value: expiry is checked
// lazily on read and an expired entry is dropped as part of the lookup.
type Store interface {
	// Get returns the stored value for key, or ok=false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key for the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Key builds the canonical cache key for a normalized query and result limit.
func Key(normalizedQuery string, limit int) string {
	return normalizedQuery + ":" + strconv.Itoa(limit)
}
