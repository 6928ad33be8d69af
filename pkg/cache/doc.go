// Package cache provides the result cache for registry lookups.
//
// # Overview
//
// Lookups against the registry are slow and the same prefixes are typed
// over and over, so extracted result sequences are cached under
// "normalizedQuery:limit" keys for a short, fixed TTL.
//
// # Backends
//
// Three [Store] implementations are provided:
//
//   - [MemoryStore]: bounded in-process map with lazy expiry and
//     insertion-order eviction. This is the default.
//   - [RedisStore]: shared cache for multi-process deployments.
//   - [NullStore]: caching disabled.
//
// # Sizing
//
// TTL and capacity are fixed design constants ([DefaultTTL],
// [DefaultCapacity]), not runtime configuration.
package cache
