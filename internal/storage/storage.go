// Package storage archives the outcome of each aggregation: what was
// asked, which engines were consulted, how many results came back, and how
// long it took. Result payloads themselves live only in the TTL cache;
// the archive holds outcome metadata for reporting.
package storage

import (
	"context"
	"time"
)

// Record is the archived outcome of one search call.
type Record struct {
	ID          string
	Query       string
	Page        int
	Engines     []string
	ResultCount int
	CacheHit    bool
	Duration    time.Duration
	Error       string // aggregated failure causes when zero results came back
	CreatedAt   time.Time
}

// Filter selects archived records.
type Filter struct {
	Query    string
	CacheHit *bool
	Since    *time.Time
	Limit    int
	Offset   int
}

// Backend stores and queries archive records.
type Backend interface {
	Save(ctx context.Context, rec *Record) error
	Query(ctx context.Context, filter Filter) ([]*Record, error)
	Close() error
}
