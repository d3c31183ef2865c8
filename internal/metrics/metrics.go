package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skim_fetch_attempts_total",
			Help: "Total fetch attempts against upstream engines",
		},
		[]string{"engine", "outcome"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skim_search_duration_seconds",
			Help:    "End-to-end duration of aggregated searches in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"cache"},
	)

	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skim_cache_total",
			Help: "Cache lookups by namespace and outcome",
		},
		[]string{"namespace", "outcome"},
	)

	ResultsCollectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skim_results_collected_total",
			Help: "Parsed results collected per engine before ranking",
		},
		[]string{"engine"},
	)

	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skim_suggestions_total",
			Help: "Suggestion lookups by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordFetchAttempt counts one attempt against an engine.
// Outcome is one of success, retryable, network_error.
func RecordFetchAttempt(engine, outcome string) {
	FetchAttemptsTotal.WithLabelValues(engine, outcome).Inc()
}

// RecordSearch observes a completed search call.
func RecordSearch(cacheHit bool, d time.Duration) {
	label := "miss"
	if cacheHit {
		label = "hit"
	}
	SearchDuration.WithLabelValues(label).Observe(d.Seconds())
}

// RecordCache counts a cache lookup in the given key namespace.
func RecordCache(namespace string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheHitsTotal.WithLabelValues(namespace, outcome).Inc()
}

// Server exposes /metrics for Prometheus scraping.
type Server struct {
	srv *http.Server
}

// Start begins listening on the given port in a background goroutine.
func Start(port int) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server failed", "err", err)
		}
	}()

	return &Server{srv: srv}
}

// Stop gracefully shuts the metrics server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
