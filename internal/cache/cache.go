// Package cache provides the TTL-keyed store the aggregator writes result
// sets through. The backing store is pluggable: a Redis instance when one
// answers at startup, otherwise an in-process map for the life of the
// process. Expired entries are purged lazily on read.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Default TTLs for the two payload kinds.
const (
	ResultTTL  = 3600 * time.Second
	SuggestTTL = 1800 * time.Second
)

// Key namespaces. Result-set and suggestion keys must never collide.
const (
	resultPrefix  = "q:"
	suggestPrefix = "suggest:"
)

// Store is a key/value store with per-entry expiry. Implementations must
// make the read-check-expire sequence atomic per key.
type Store interface {
	// Get returns the payload for key, or ok=false if absent or expired.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)
	// Set stores payload under key for the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Close() error
}

// ResultKey derives the cache key for a (query, page) pair. The query is
// trimmed and lowercased but interior whitespace is NOT collapsed, so
// "golang  concurrency" and "golang concurrency" cache separately.
func ResultKey(query string, page int) string {
	return resultPrefix + digest(normalize(query)+"\x00"+strconv.Itoa(page))
}

// SuggestKey derives the cache key for a suggestion query. The namespace
// prefix keeps it disjoint from result-set keys.
func SuggestKey(query string) string {
	return suggestPrefix + digest(normalize(query))
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// New returns a Redis-backed store when the instance at addr answers a
// ping, falling back permanently to the in-process store otherwise.
// An empty addr skips the probe.
func New(ctx context.Context, addr string, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		return NewMemory()
	}

	store, err := NewRedis(ctx, addr)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "addr", addr, "err", err)
		return NewMemory()
	}
	logger.Info("using redis cache", "addr", addr)
	return store
}
