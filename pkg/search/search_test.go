package search

import (
	"context"
	"errors"
	"testing"

	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/cache"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/registry"
)

// fakeFetcher counts outbound calls and returns a fixed sequence.
type fakeFetcher struct {
	calls   int
	matches []registry.Match
	err     error
}

func (f *fakeFetcher) Search(_ context.Context, query string) ([]registry.Match, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

func manyMatches(n int) []registry.Match {
	matches := make([]registry.Match, n)
	for i := range matches {
		matches[i] = registry.Match{Name: "MATCH", DocumentNumber: "P0"}
	}
	return matches
}

func newTestService(t *testing.T, f Fetcher) *Service {
	t.Helper()
	return New(f, cache.NewMemoryStore(cache.DefaultCapacity), nil)
}

func TestService_QueryTooShort(t *testing.T) {
	tests := []string{"", "a", " a ", "  ", "\t x \t"}

	for _, query := range tests {
		fetcher := &fakeFetcher{}
		svc := newTestService(t, fetcher)

		_, err := svc.Search(context.Background(), query, "")
		if !errors.Is(err, ErrQueryTooShort) {
			t.Errorf("Search(%q): expected ErrQueryTooShort, got %v", query, err)
		}
		if fetcher.calls != 0 {
			t.Errorf("Search(%q): performed %d outbound calls, want 0", query, fetcher.calls)
		}
	}
}

func TestService_CacheHitOnSecondCall(t *testing.T) {
	fetcher := &fakeFetcher{matches: manyMatches(3)}
	svc := newTestService(t, fetcher)
	ctx := context.Background()

	first, err := svc.Search(ctx, "tesla", "7")
	if err != nil {
		t.Fatalf("first Search failed: %v", err)
	}
	if first.FromCache {
		t.Error("first call should not be from cache")
	}

	second, err := svc.Search(ctx, "tesla", "7")
	if err != nil {
		t.Fatalf("second Search failed: %v", err)
	}
	if !second.FromCache {
		t.Error("second call should be a cache hit")
	}
	if fetcher.calls != 1 {
		t.Errorf("performed %d outbound calls, want 1", fetcher.calls)
	}
	if len(second.Results) != 3 {
		t.Errorf("cached results = %d, want 3", len(second.Results))
	}
}

func TestService_CacheKeyNormalization(t *testing.T) {
	// Same query modulo case and whitespace shares one cache entry.
	fetcher := &fakeFetcher{matches: manyMatches(1)}
	svc := newTestService(t, fetcher)
	ctx := context.Background()

	if _, err := svc.Search(ctx, "Tesla", "7"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	res, err := svc.Search(ctx, "  TESLA  ", "7")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !res.FromCache {
		t.Error("normalized query should hit the cache")
	}
	if fetcher.calls != 1 {
		t.Errorf("performed %d outbound calls, want 1", fetcher.calls)
	}
}

func TestService_DistinctLimitsAreDistinctEntries(t *testing.T) {
	fetcher := &fakeFetcher{matches: manyMatches(1)}
	svc := newTestService(t, fetcher)
	ctx := context.Background()

	svc.Search(ctx, "tesla", "5")
	svc.Search(ctx, "tesla", "6")

	if fetcher.calls != 2 {
		t.Errorf("performed %d outbound calls, want 2 (one per key)", fetcher.calls)
	}
}

func TestService_LimitClamping(t *testing.T) {
	tests := []struct {
		rawLimit string
		want     int
	}{
		{"0", 1},
		{"-3", 1},
		{"15", 10},
		{"abc", 7},
		{"", 7},
		{"4", 4},
		{" 9 ", 9},
	}

	for _, tt := range tests {
		t.Run(tt.rawLimit, func(t *testing.T) {
			fetcher := &fakeFetcher{matches: manyMatches(20)}
			svc := newTestService(t, fetcher)

			res, err := svc.Search(context.Background(), "tesla", tt.rawLimit)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(res.Results) != tt.want {
				t.Errorf("limit %q: got %d results, want %d", tt.rawLimit, len(res.Results), tt.want)
			}
		})
	}
}

func TestService_LimitSlicesCachedSequence(t *testing.T) {
	// The full sequence is cached; the limit applies on every read.
	fetcher := &fakeFetcher{matches: manyMatches(10)}
	svc := newTestService(t, fetcher)
	ctx := context.Background()

	first, _ := svc.Search(ctx, "tesla", "3")
	if len(first.Results) != 3 {
		t.Fatalf("first read = %d results, want 3", len(first.Results))
	}

	second, _ := svc.Search(ctx, "tesla", "3")
	if !second.FromCache {
		t.Fatal("second read should hit the cache")
	}
	if len(second.Results) != 3 {
		t.Errorf("cached read = %d results, want 3", len(second.Results))
	}
}

func TestService_FetchErrorPassesThrough(t *testing.T) {
	wantErr := &registry.UpstreamError{StatusCode: 503}
	fetcher := &fakeFetcher{err: wantErr}
	svc := newTestService(t, fetcher)

	_, err := svc.Search(context.Background(), "tesla", "")
	var upstream *registry.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != 503 {
		t.Errorf("status = %d, want 503", upstream.StatusCode)
	}
}

func TestService_FailedFetchNotCached(t *testing.T) {
	fetcher := &fakeFetcher{err: registry.ErrNetwork}
	svc := newTestService(t, fetcher)
	ctx := context.Background()

	svc.Search(ctx, "tesla", "")
	svc.Search(ctx, "tesla", "")

	if fetcher.calls != 2 {
		t.Errorf("performed %d outbound calls, want 2 (errors are not cached)", fetcher.calls)
	}
}

func TestService_NullStoreAlwaysFetches(t *testing.T) {
	fetcher := &fakeFetcher{matches: manyMatches(1)}
	svc := New(fetcher, cache.NewNullStore(), nil)
	ctx := context.Background()

	svc.Search(ctx, "tesla", "")
	res, _ := svc.Search(ctx, "tesla", "")

	if fetcher.calls != 2 {
		t.Errorf("performed %d outbound calls, want 2", fetcher.calls)
	}
	if res.FromCache {
		t.Error("null store results must never be tagged fromCache")
	}
}

func TestService_EmptyResultsNotNil(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestService(t, fetcher)

	res, err := svc.Search(context.Background(), "zzzz", "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Results == nil {
		t.Error("Results should serialize as [] rather than null")
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", DefaultLimit},
		{"abc", DefaultLimit},
		{"3.5", DefaultLimit},
		{"0", MinLimit},
		{"1", 1},
		{"10", 10},
		{"11", MaxLimit},
		{"100", MaxLimit},
	}

	for _, tt := range tests {
		if got := parseLimit(tt.raw); got != tt.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
