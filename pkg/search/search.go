// Package search orchestrates query handling: validation, cache lookups,
// and registry fetches.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/cache"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/observability"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/registry"
)

// Result limits. A request may ask for between MinLimit and MaxLimit
// matches; out-of-range values are clamped and unparsable ones fall back
// to DefaultLimit.
const (
	MinLimit     = 1
	MaxLimit     = 10
	DefaultLimit = 7

	// minQueryRunes is the shortest normalized query worth sending upstream.
	minQueryRunes = 2
)

// ErrQueryTooShort is returned when the normalized query has fewer than
// two characters. No remote call is made and the cache is not touched.
var ErrQueryTooShort = errors.New("query must be at least 2 characters")

// Fetcher locates matches for a query on the remote registry.
// *registry.Client is the production implementation.
type Fetcher interface {
	Search(ctx context.Context, query string) ([]registry.Match, error)
}

// Result is the answer to one lookup.
type Result struct {
	Results   []registry.Match `json:"results"`
	FromCache bool             `json:"fromCache,omitempty"`
}

// Service answers lookups, consulting the cache before the registry.
//
// The full extracted sequence is cached under "normalizedQuery:limit";
// the requested limit is applied when slicing the response. Concurrent
// requests for the same key may both miss and both fetch; the duplicate
// fetch is accepted rather than coordinated away.
type Service struct {
	fetcher Fetcher
	store   cache.Store
	logger  *log.Logger
}

// New creates a Service. A nil store disables caching and a nil logger
// falls back to the default logger.
func New(fetcher Fetcher, store cache.Store, logger *log.Logger) *Service {
	if store == nil {
		store = cache.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{fetcher: fetcher, store: store, logger: logger}
}

// Search handles one raw query.
//
// The query is trimmed and lowercased for the cache key only; the
// original text is what goes to the registry. rawLimit may be empty or
// unparsable, in which case DefaultLimit applies.
//
// Returns [ErrQueryTooShort] for queries under two characters, and passes
// through [registry.ErrNetwork] / [*registry.UpstreamError] from the
// fetch. Anything else the caller should treat as an internal failure.
func (s *Service) Search(ctx context.Context, rawQuery, rawLimit string) (*Result, error) {
	normalized := strings.ToLower(strings.TrimSpace(rawQuery))
	if utf8.RuneCountInString(normalized) < minQueryRunes {
		return nil, ErrQueryTooShort
	}
	limit := parseLimit(rawLimit)
	key := cache.Key(normalized, limit)

	if matches, ok := s.cached(ctx, key); ok {
		observability.Cache().OnCacheHit(ctx, key)
		s.logger.Debug("cache hit", "key", key, "matches", len(matches))
		return &Result{Results: firstN(matches, limit), FromCache: true}, nil
	}
	observability.Cache().OnCacheMiss(ctx, key)

	matches, err := s.fetcher.Search(ctx, rawQuery)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("fetched from registry", "query", rawQuery, "matches", len(matches))

	if data, err := json.Marshal(matches); err == nil {
		if err := s.store.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			s.logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}

	return &Result{Results: firstN(matches, limit)}, nil
}

// cached loads and decodes a stored sequence. Undecodable or unreadable
// entries are dropped and reported as misses.
func (s *Service) cached(ctx context.Context, key string) ([]registry.Match, bool) {
	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var matches []registry.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, false
	}
	return matches, true
}

// parseLimit resolves a raw limit string to an effective limit in
// [MinLimit, MaxLimit]. Absent or unparsable input means DefaultLimit.
func parseLimit(raw string) int {
	if raw == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultLimit
	}
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// firstN returns at most n matches. The empty case stays non-nil so the
// JSON response carries "results": [] rather than null.
func firstN(matches []registry.Match, n int) []registry.Match {
	if matches == nil {
		return []registry.Match{}
	}
	if len(matches) > n {
		return matches[:n]
	}
	return matches
}
