// Package fetch issues paced, retried GET requests against upstream search
// engines. Absence of a usable response is ordinary here: exhausting
// retries on bad statuses yields (nil, nil), and callers treat that as
// zero results. Only transport-level failures surface as an error.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/FranksOps/skim/internal/fingerprint"
	"github.com/FranksOps/skim/internal/metrics"
	"github.com/FranksOps/skim/pkg/backoff"
	"github.com/FranksOps/skim/pkg/httpclient"
	"github.com/FranksOps/skim/pkg/useragent"
	"github.com/google/uuid"
)

// Response is the body and metadata of a successful fetch.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// FetchError reports retry exhaustion where at least one attempt failed at
// the transport level. Pure non-200 exhaustion is not an error.
type FetchError struct {
	URL      string
	Attempts int
	Cause    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// Attempt records one pass through the retry loop. Attempts are ephemeral:
// logged and counted, never persisted.
type Attempt struct {
	ID     string
	URL    string
	Number int
	Status int
	Err    error
}

// Config configures a Fetcher.
type Config struct {
	Timeout      time.Duration
	MaxRetries   int
	Backoff      backoff.Policy
	MaxRedirects int
	UseCookieJar bool
	UAPool       *useragent.Pool
	Fingerprint  fingerprint.Profile
	Logger       *slog.Logger
}

// Fetcher retries GETs with exponential pacing. One Fetcher is shared
// process-wide so connections and cookies persist across queries.
type Fetcher struct {
	cfg    Config
	client *httpclient.Client
	logger *slog.Logger
}

// NewFetcher builds a Fetcher, applying defaults for unset fields.
func NewFetcher(cfg Config) (*Fetcher, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 2
	}
	if cfg.Backoff.Base == 0 {
		cfg.Backoff.Base = 300 * time.Millisecond
	}
	if cfg.MaxRedirects == 0 {
		cfg.MaxRedirects = 5
	}
	if cfg.UAPool == nil {
		cfg.UAPool = useragent.NewPool(nil)
	}
	if cfg.Fingerprint == "" {
		cfg.Fingerprint = fingerprint.ProfileChrome
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	transport, err := fingerprint.Transport(cfg.Fingerprint)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRedirects: cfg.MaxRedirects,
		UseCookieJar: cfg.UseCookieJar,
		Transport:    transport,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	return &Fetcher{cfg: cfg, client: client, logger: cfg.Logger}, nil
}

// Fetch GETs rawURL with the given query parameters, retrying up to
// MaxRetries attempts. Every attempt is preceded by a pacing delay and
// carries freshly randomized headers. Returns:
//
//   - (*Response, nil) on the first 200
//   - (nil, nil) when all attempts failed on HTTP status alone
//   - (nil, *FetchError) when a transport error occurred
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, params url.Values) (*Response, error) {
	target := rawURL
	if len(params) > 0 {
		target = rawURL + "?" + params.Encode()
	}
	engine := hostOf(target)

	var lastErr error

	for attempt := 0; attempt < f.cfg.MaxRetries; attempt++ {
		if err := f.cfg.Backoff.Sleep(ctx, attempt, 1); err != nil {
			return nil, &FetchError{URL: target, Attempts: attempt, Cause: err}
		}

		a := Attempt{ID: uuid.New().String(), URL: target, Number: attempt}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, &FetchError{URL: target, Attempts: attempt + 1, Cause: err}
		}
		req.Header = f.cfg.UAPool.Headers()

		resp, err := f.client.Do(ctx, req)
		if err != nil {
			a.Err = err
			lastErr = err
			metrics.RecordFetchAttempt(engine, "network_error")
			f.logger.Error("request failed", "attempt_id", a.ID, "url", rawURL, "attempt", attempt+1, "err", err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			a.Err = readErr
			lastErr = readErr
			metrics.RecordFetchAttempt(engine, "network_error")
			f.logger.Error("body read failed", "attempt_id", a.ID, "url", rawURL, "attempt", attempt+1, "err", readErr)
			continue
		}

		a.Status = resp.StatusCode

		switch Classify(resp.StatusCode, body) {
		case ClassSuccess:
			metrics.RecordFetchAttempt(engine, "success")
			return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
		case ClassRateLimited:
			metrics.RecordFetchAttempt(engine, "retryable")
			f.logger.Warn("rate limited", "attempt_id", a.ID, "url", rawURL, "attempt", attempt+1, "status", resp.StatusCode)
			if err := f.cfg.Backoff.Sleep(ctx, attempt, 2); err != nil {
				return nil, &FetchError{URL: target, Attempts: attempt + 1, Cause: err}
			}
		default:
			metrics.RecordFetchAttempt(engine, "retryable")
			f.logger.Error("unexpected status", "attempt_id", a.ID, "url", rawURL, "attempt", attempt+1, "status", resp.StatusCode)
		}
	}

	if lastErr != nil {
		return nil, &FetchError{URL: target, Attempts: f.cfg.MaxRetries, Cause: lastErr}
	}
	// All attempts failed on status alone: no response, not an error.
	return nil, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}
	return u.Hostname()
}
