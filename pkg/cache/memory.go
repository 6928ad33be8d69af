package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a bounded in-memory store with per-entry TTL.
//
// Expiry is lazy: an expired entry is removed by the Get that observes it,
// there is no background sweep. When the store is full, Set evicts the
// least-recently-inserted entry (insertion order, not access order) before
// inserting the new one.
//
// All methods are safe for concurrent use by multiple goroutines.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry
	queue    []string // keys in insertion order, oldest first; mirrors entries exactly
	capacity int
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates a memory store holding at most capacity entries.
// A capacity of zero or less falls back to DefaultCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{
		entries:  make(map[string]*memoryEntry),
		capacity: capacity,
	}
}

// Get returns the value stored under key, or ok=false on miss or expiry.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(e.expiresAt) {
		// Expired, drop as part of the lookup.
		delete(s.entries, key)
		s.removeFromQueue(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores data under key with the given TTL, evicting the oldest entry
// first when the store is at capacity.
func (s *MemoryStore) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		// Overwrite keeps the key's original insertion position.
		s.entries[key] = &memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
		return nil
	}

	if len(s.entries) >= s.capacity {
		s.evictOldest()
	}

	s.entries[key] = &memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	s.queue = append(s.queue, key)
	return nil
}

// Delete removes a value from the store.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		s.removeFromQueue(key)
	}
	s.mu.Unlock()
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Len reports the number of entries currently held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evictOldest removes exactly one entry, the oldest by insertion.
// Caller must hold s.mu.
func (s *MemoryStore) evictOldest() {
	if len(s.queue) == 0 {
		return
	}
	oldest := s.queue[0]
	s.queue = s.queue[1:]
	delete(s.entries, oldest)
}

// removeFromQueue drops key from the insertion-order queue so it stays in
// step with the entries map. Linear, but the queue is bounded by the store
// capacity. Caller must hold s.mu.
func (s *MemoryStore) removeFromQueue(key string) {
	for i, k := range s.queue {
		if k == key {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
