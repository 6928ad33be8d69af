package cache

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	if got := Key("tesla", 7); got != "tesla:7" {
		t.Errorf("Key() = %q, want %q", got, "tesla:7")
	}
	if got := Key("acme corp", 10); got != "acme corp:10" {
		t.Errorf("Key() = %q, want %q", got, "acme corp:10")
	}
}

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)
	defer s.Close()

	value := []byte(`[{"name":"TESLA LLC"}]`)
	if err := s.Set(ctx, "tesla:7", value, time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, ok, err := s.Get(ctx, "tesla:7")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok {
		t.Fatal("Get should hit after Set")
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get = %q, want %q", got, value)
	}
}

func TestMemoryStore_Miss(t *testing.T) {
	s := NewMemoryStore(10)
	defer s.Close()

	_, ok, err := s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok {
		t.Error("Get should miss for an absent key")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)
	defer s.Close()

	if err := s.Set(ctx, "k", []byte("v"), 50*time.Millisecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Retrievable before the TTL passes.
	if _, ok, _ := s.Get(ctx, "k"); !ok {
		t.Fatal("entry should be retrievable before expiry")
	}

	time.Sleep(100 * time.Millisecond)

	// Expired entry is dropped as part of the lookup.
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("entry should not be retrievable after expiry")
	}
	if s.Len() != 0 {
		t.Errorf("expired entry should be deleted on read, Len = %d", s.Len())
	}
	if len(s.queue) != 0 {
		t.Errorf("expired key should leave the queue too, len = %d", len(s.queue))
	}
}

func TestMemoryStore_QueueStaysBoundedUnderExpiry(t *testing.T) {
	// Low-traffic workload: every entry expires before the store fills,
	// so capacity eviction never runs. The queue must not accumulate the
	// dead keys for the life of the process.
	ctx := context.Background()
	s := NewMemoryStore(200)
	defer s.Close()

	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("q-%d", i)
		s.Set(ctx, key, []byte("v"), -time.Second) // already expired
		s.Get(ctx, key)

		if len(s.queue) > s.capacity {
			t.Fatalf("queue grew past capacity at insert %d: len = %d", i, len(s.queue))
		}
	}
	if len(s.queue) != 0 {
		t.Errorf("queue should be empty once every entry has expired, len = %d", len(s.queue))
	}
}

func TestMemoryStore_EvictsOldestInserted(t *testing.T) {
	ctx := context.Background()
	const capacity = 3
	s := NewMemoryStore(capacity)
	defer s.Close()

	// Fill to capacity, then insert one more.
	for i := 0; i < capacity+1; i++ {
		key := fmt.Sprintf("key-%d", i)
		if err := s.Set(ctx, key, []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set(%s) error: %v", key, err)
		}
	}

	// First-inserted key is gone, the rest remain.
	if _, ok, _ := s.Get(ctx, "key-0"); ok {
		t.Error("oldest key should have been evicted")
	}
	for i := 1; i < capacity+1; i++ {
		key := fmt.Sprintf("key-%d", i)
		if _, ok, _ := s.Get(ctx, key); !ok {
			t.Errorf("%s should still be present", key)
		}
	}
}

func TestMemoryStore_DeleteKeepsEvictionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)
	defer s.Close()

	s.Set(ctx, "a", []byte("1"), time.Minute)
	s.Set(ctx, "b", []byte("2"), time.Minute)
	s.Delete(ctx, "a")

	// Deleting "a" removes it from the queue as well, so the next
	// evictions target "b" and then "c" in insertion order.
	s.Set(ctx, "c", []byte("3"), time.Minute)
	s.Set(ctx, "d", []byte("4"), time.Minute)

	if _, ok, _ := s.Get(ctx, "b"); ok {
		t.Error("b should have been evicted as the oldest entry")
	}
	if _, ok, _ := s.Get(ctx, "c"); !ok {
		t.Error("c should still be present")
	}
	if _, ok, _ := s.Get(ctx, "d"); !ok {
		t.Error("d should still be present")
	}
}

func TestMemoryStore_OverwriteKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)
	defer s.Close()

	s.Set(ctx, "a", []byte("1"), time.Minute)
	s.Set(ctx, "b", []byte("2"), time.Minute)
	s.Set(ctx, "a", []byte("updated"), time.Minute)

	got, ok, _ := s.Get(ctx, "a")
	if !ok || !bytes.Equal(got, []byte("updated")) {
		t.Fatalf("overwrite lost: got %q ok=%v", got, ok)
	}

	// "a" keeps its original position, so it is still evicted first.
	s.Set(ctx, "c", []byte("3"), time.Minute)
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("a should have been evicted despite the later overwrite")
	}
	if _, ok, _ := s.Get(ctx, "b"); !ok {
		t.Error("b should still be present")
	}
}

func TestMemoryStore_DefaultCapacity(t *testing.T) {
	s := NewMemoryStore(0)
	if s.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", s.capacity, DefaultCapacity)
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	data, ok, err := s.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok {
		t.Error("NullStore.Get should always miss")
	}
	if data != nil {
		t.Error("NullStore.Get should return nil data")
	}

	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}
