package aggregate

import (
	"context"
	"encoding/json"
	"unicode/utf8"

	"github.com/FranksOps/skim/internal/cache"
	"github.com/FranksOps/skim/internal/engine"
	"github.com/FranksOps/skim/internal/metrics"
)

// minSuggestLen is the shortest query worth a network round trip.
const minSuggestLen = 2

// Suggest returns type-ahead completions for query. Queries shorter than
// two runes return empty immediately, with no network call. Any failure
// along the way degrades to an empty list.
func (a *Aggregator) Suggest(ctx context.Context, query string) []string {
	if utf8.RuneCountInString(query) < minSuggestLen {
		return nil
	}

	key := cache.SuggestKey(query)
	if payload, ok := a.cacheGet(ctx, key, "suggest"); ok {
		var cached []string
		if err := json.Unmarshal(payload, &cached); err == nil {
			metrics.SuggestionsTotal.WithLabelValues("cache_hit").Inc()
			return cached
		}
	}

	resp, err := a.fetcher.Fetch(ctx, a.cfg.SuggestURL, engine.SuggestParams(query))
	if err != nil || resp == nil {
		if err != nil {
			a.logger.Warn("suggestion fetch failed", "query", query, "err", err)
		}
		metrics.SuggestionsTotal.WithLabelValues("error").Inc()
		return nil
	}

	suggestions, err := parseSuggestions(resp.Body)
	if err != nil {
		a.logger.Warn("suggestion response malformed", "query", query, "err", err)
		metrics.SuggestionsTotal.WithLabelValues("error").Inc()
		return nil
	}

	if payload, err := json.Marshal(suggestions); err == nil {
		if err := a.store.Set(ctx, key, payload, cache.SuggestTTL); err != nil {
			a.logger.Warn("suggestion cache write failed", "key", key, "err", err)
		}
	}

	metrics.SuggestionsTotal.WithLabelValues("ok").Inc()
	return suggestions
}

// parseSuggestions decodes the completion endpoint's response: a JSON
// array whose second element is the list of suggestion strings.
func parseSuggestions(body []byte) ([]string, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, err
	}
	if len(outer) < 2 {
		return nil, nil
	}
	var suggestions []string
	if err := json.Unmarshal(outer[1], &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
