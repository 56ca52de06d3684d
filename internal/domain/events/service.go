package events

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	// fetchLimitMultiplier over-fetches relative to the requested limit so
	// the filters have enough raw material to work with.
	fetchLimitMultiplier = 4
	maxFetchLimit        = 100
)

// Source supplies raw event records, typically from the data.sfgov.org API.
type Source interface {
	Fetch(ctx context.Context, limit int) ([]Record, error)
}

// Cache is a TTL-bounded store for raw fetch payloads, keyed by fetch
// parameters.
type Cache interface {
	Get(key string) ([]Record, bool)
	Set(key string, records []Record)
	Clear()
}

// Query is one search request against the events service.
type Query struct {
	Params
	Limit    int
	UseCache bool
}

// Service fetches, filters, and formats events. The filtering itself is
// stateless; the service only adds the fetch and cache collaboration around
// it, so concurrent Search calls need no coordination.
type Service struct {
	source Source
	cache  Cache
}

// NewService creates an events service. cache may be nil to disable caching.
func NewService(source Source, cache Cache) *Service {
	return &Service{source: source, cache: cache}
}

// Search runs one fetch-filter-format pass and returns the structured
// response. Data-quality problems inside the batch never fail the call; only
// the upstream fetch can.
func (s *Service) Search(ctx context.Context, query Query) (*SearchResponse, error) {
	limit := ClampLimit(query.Limit)
	if query.RadiusKM <= 0 {
		query.RadiusKM = DefaultRadiusKM
	}

	normalizedSearch, keyword := ExtractRelativeDate(query.Search, query.RelativeDate)
	query.Search = normalizedSearch
	query.RelativeDate = keyword

	fetchLimit := limit * fetchLimitMultiplier
	if fetchLimit > maxFetchLimit {
		fetchLimit = maxFetchLimit
	}

	records, fromCache, err := s.fetch(ctx, fetchLimit, query.UseCache)
	if err != nil {
		return nil, err
	}

	filtered := ApplyAllFilters(records, query.Params)

	shown := filtered
	if len(shown) > limit {
		shown = shown[:limit]
	}

	cards := make([]EventCard, 0, len(shown))
	for _, record := range shown {
		cards = append(cards, BuildEventCard(record))
	}

	response := &SearchResponse{
		Summary: SearchSummary{
			TotalFound: len(filtered),
			Showing:    len(cards),
			FromCache:  fromCache,
		},
		Events: cards,
		Map:    BuildMapData(cards),
	}

	log.Info().
		Int("total_found", response.Summary.TotalFound).
		Int("showing", response.Summary.Showing).
		Bool("from_cache", fromCache).
		Msg("Event search complete")

	return response, nil
}

// ClearCache drops all cached fetch payloads.
func (s *Service) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func (s *Service) fetch(ctx context.Context, fetchLimit int, useCache bool) ([]Record, bool, error) {
	key := CacheKey(map[string]any{"limit": fetchLimit})

	if useCache && s.cache != nil {
		if records, ok := s.cache.Get(key); ok {
			log.Debug().Str("key", key).Msg("Cache hit for event fetch")
			return records, true, nil
		}
	}

	records, err := s.source.Fetch(ctx, fetchLimit)
	if err != nil {
		return nil, false, fmt.Errorf("fetch events: %w", err)
	}

	if s.cache != nil && len(records) > 0 {
		s.cache.Set(key, records)
		log.Debug().Str("key", key).Int("count", len(records)).Msg("Cache set for event fetch")
	}

	return records, false, nil
}

// CacheKey builds a stable cache key from fetch parameters: nil values are
// skipped and keys are serialized in sorted order.
func CacheKey(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if value == nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			builder.WriteByte(',')
		}
		encoded, err := json.Marshal(params[key])
		if err != nil {
			encoded = []byte(fmt.Sprintf("%q", fmt.Sprintf("%v", params[key])))
		}
		fmt.Fprintf(&builder, "%q:%s", key, encoded)
	}
	builder.WriteByte('}')
	return builder.String()
}

// ExtractRelativeDate strips relative-date keywords from free-text search
// input and derives a relative-date keyword from the first one found, unless
// the caller already supplied one explicitly. Longer keywords are tried
// first so "this weekend" wins over "weekend".
func ExtractRelativeDate(search, relativeDate string) (string, string) {
	if search == "" {
		return "", relativeDate
	}

	keywords := make([]string, 0, len(relativeDateKeywords))
	for keyword := range relativeDateKeywords {
		keywords = append(keywords, keyword)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if len(keywords[i]) != len(keywords[j]) {
			return len(keywords[i]) > len(keywords[j])
		}
		return keywords[i] < keywords[j]
	})

	normalized := search
	derived := relativeDate
	lowered := strings.ToLower(search)

	for _, keyword := range keywords {
		if !strings.Contains(lowered, keyword) {
			continue
		}
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
		if !pattern.MatchString(normalized) {
			// Substring hit inside a longer word ("todayish"), not a keyword.
			continue
		}
		if derived == "" {
			derived = relativeDateKeywords[keyword]
		}
		normalized = pattern.ReplaceAllString(normalized, " ")
		lowered = strings.ToLower(normalized)
	}

	normalized = strings.Join(strings.Fields(normalized), " ")
	return normalized, derived
}
