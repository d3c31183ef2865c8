// Package aggregate orchestrates the search pipeline: cache check, fan-out
// to the configured engines, completion-order collection with a quota
// short-circuit, ranking, and cache write-through. All lower-level failures
// are absorbed here; the only caller-visible failure mode is an empty
// result set.
package aggregate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/FranksOps/skim/internal/cache"
	"github.com/FranksOps/skim/internal/engine"
	"github.com/FranksOps/skim/internal/fetch"
	"github.com/FranksOps/skim/internal/metrics"
	"github.com/FranksOps/skim/internal/parse"
	"github.com/FranksOps/skim/internal/rank"
	"github.com/FranksOps/skim/internal/result"
	"github.com/FranksOps/skim/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Fetcher is the slice of the fetch package the aggregator depends on,
// narrowed so tests can substitute a fake.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, params url.Values) (*fetch.Response, error)
}

// Config tunes the orchestration.
type Config struct {
	Engines []engine.Engine
	// Workers bounds concurrent engine fetches. The pool is per-call
	// bounded but the aggregator itself is a process-lifetime object.
	Workers int
	// Quota stops collection once this many results have been gathered.
	Quota int
	// SuggestURL overrides the completion endpoint, for tests.
	SuggestURL string
}

// Aggregator is the pipeline entry point. Construct once and share;
// Search and Suggest are safe for concurrent use.
type Aggregator struct {
	cfg     Config
	fetcher Fetcher
	parser  *parse.Parser
	ranker  *rank.Ranker
	store   cache.Store
	archive storage.Backend // optional, best-effort
	logger  *slog.Logger
}

// New wires the pipeline together. Archive may be nil to disable the
// query archive.
func New(cfg Config, fetcher Fetcher, parser *parse.Parser, ranker *rank.Ranker, store cache.Store, archive storage.Backend, logger *slog.Logger) *Aggregator {
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}
	if cfg.Quota <= 0 {
		cfg.Quota = 5
	}
	if len(cfg.Engines) == 0 {
		cfg.Engines = engine.Defaults()
	}
	if cfg.SuggestURL == "" {
		cfg.SuggestURL = engine.SuggestURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		cfg:     cfg,
		fetcher: fetcher,
		parser:  parser,
		ranker:  ranker,
		store:   store,
		archive: archive,
		logger:  logger,
	}
}

type engineOutcome struct {
	engine  string
	results []result.SearchResult
	err     error
}

// Search returns ranked results for (query, page). Page is 1-based.
// The call blocks until the quota is reached or every engine has completed
// or failed. Zero results is the only failure signal.
func (a *Aggregator) Search(ctx context.Context, query string, page int) []result.SearchResult {
	if page < 1 {
		page = 1
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	start := time.Now()
	key := cache.ResultKey(query, page)

	if payload, ok := a.cacheGet(ctx, key, "q"); ok {
		var cached []result.SearchResult
		if err := json.Unmarshal(payload, &cached); err == nil {
			metrics.RecordSearch(true, time.Since(start))
			a.saveRecord(ctx, query, page, nil, len(cached), true, time.Since(start), "")
			return cached
		}
		a.logger.Warn("discarding undecodable cache entry", "key", key)
	}

	collected, errCauses := a.fanOut(ctx, query, page)
	collected = dropExtraInfoBoxes(collected)

	if len(collected) == 0 {
		if len(errCauses) > 0 {
			a.logger.Error("all backends failed", "query", query, "causes", strings.Join(errCauses, "; "))
		}
		metrics.RecordSearch(false, time.Since(start))
		a.saveRecord(ctx, query, page, engineNames(a.cfg.Engines), 0, false, time.Since(start), strings.Join(errCauses, "; "))
		return nil
	}

	ranked := a.ranker.Rank(query, collected)

	if payload, err := json.Marshal(ranked); err == nil {
		if err := a.store.Set(ctx, key, payload, cache.ResultTTL); err != nil {
			a.logger.Warn("cache write failed", "key", key, "err", err)
		}
	}

	metrics.RecordSearch(false, time.Since(start))
	a.saveRecord(ctx, query, page, engineNames(a.cfg.Engines), len(ranked), false, time.Since(start), "")
	return ranked
}

// fanOut queries every engine concurrently and collects parsed results in
// completion order until the quota is met. Stragglers are abandoned: the
// fan-out context is cancelled on return and their results discarded.
func (a *Aggregator) fanOut(ctx context.Context, query string, page int) ([]result.SearchResult, []string) {
	fanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make(chan engineOutcome, len(a.cfg.Engines))

	var g errgroup.Group
	g.SetLimit(a.cfg.Workers)

	for _, e := range a.cfg.Engines {
		g.Go(func() error {
			outcomes <- a.queryEngine(fanCtx, e, query, page)
			return nil
		})
	}

	var collected []result.SearchResult
	var errCauses []string

	for received := 0; received < len(a.cfg.Engines); received++ {
		var o engineOutcome
		select {
		case <-ctx.Done():
			return collected, errCauses
		case o = <-outcomes:
		}

		if o.err != nil {
			errCauses = append(errCauses, o.engine+": "+o.err.Error())
			continue
		}
		collected = append(collected, o.results...)
		metrics.ResultsCollectedTotal.WithLabelValues(o.engine).Add(float64(len(o.results)))
		if len(collected) >= a.cfg.Quota {
			break
		}
	}

	return collected, errCauses
}

func (a *Aggregator) queryEngine(ctx context.Context, e engine.Engine, query string, page int) engineOutcome {
	resp, err := a.fetcher.Fetch(ctx, e.BaseURL, e.Params(query, page))
	if err != nil {
		return engineOutcome{engine: e.Name, err: err}
	}
	if resp == nil {
		// Retries exhausted on status alone: zero results, not a failure.
		a.logger.Warn("engine produced no response", "engine", e.Name, "query", query)
		return engineOutcome{engine: e.Name}
	}

	results := a.parser.Parse(string(resp.Body))
	for i := range results {
		results[i].Engine = e.Name
	}
	return engineOutcome{engine: e.Name, results: results}
}

// dropExtraInfoBoxes enforces the at-most-one info box invariant across
// engines: the first one collected wins.
func dropExtraInfoBoxes(results []result.SearchResult) []result.SearchResult {
	seen := false
	out := results[:0]
	for _, r := range results {
		if r.Kind == result.KindInfoBox {
			if seen {
				continue
			}
			seen = true
		}
		out = append(out, r)
	}
	return out
}

func (a *Aggregator) cacheGet(ctx context.Context, key, namespace string) ([]byte, bool) {
	payload, ok, err := a.store.Get(ctx, key)
	if err != nil {
		a.logger.Warn("cache read failed", "key", key, "err", err)
		metrics.RecordCache(namespace, false)
		return nil, false
	}
	metrics.RecordCache(namespace, ok)
	return payload, ok
}

// saveRecord archives the outcome of one search. Best-effort only.
func (a *Aggregator) saveRecord(ctx context.Context, query string, page int, engines []string, count int, cacheHit bool, d time.Duration, errText string) {
	if a.archive == nil {
		return
	}
	rec := &storage.Record{
		ID:          uuid.New().String(),
		Query:       query,
		Page:        page,
		Engines:     engines,
		ResultCount: count,
		CacheHit:    cacheHit,
		Duration:    d,
		Error:       errText,
		CreatedAt:   time.Now().UTC(),
	}
	if err := a.archive.Save(context.WithoutCancel(ctx), rec); err != nil {
		a.logger.Warn("archive save failed", "query", query, "err", err)
	}
}

func engineNames(engines []engine.Engine) []string {
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.Name
	}
	return names
}
