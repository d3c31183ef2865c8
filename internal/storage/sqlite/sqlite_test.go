package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/FranksOps/skim/internal/storage"
)

func TestSQLiteBackend(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "archive.db")
	b, err := New(dsn)
	if err != nil {
		t.Fatalf("failed to create sqlite backend: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	rec := &storage.Record{
		ID:          "rec-1",
		Query:       "golang concurrency",
		Page:        1,
		Engines:     []string{"google", "bing"},
		ResultCount: 7,
		CacheHit:    false,
		Duration:    120 * time.Millisecond,
		CreatedAt:   now,
	}

	if err := b.Save(ctx, rec); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}

	records, err := b.Query(ctx, storage.Filter{Query: "golang concurrency"})
	if err != nil {
		t.Fatalf("failed to query records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.ID != rec.ID {
		t.Errorf("expected ID %s, got %s", rec.ID, got.ID)
	}
	if got.ResultCount != 7 {
		t.Errorf("expected 7 results, got %d", got.ResultCount)
	}
	if len(got.Engines) != 2 || got.Engines[0] != "google" {
		t.Errorf("engines did not round-trip: %v", got.Engines)
	}
	if got.Duration != 120*time.Millisecond {
		t.Errorf("expected 120ms duration, got %v", got.Duration)
	}
}

func TestSQLiteBackend_Filters(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "archive.db")
	b, err := New(dsn)
	if err != nil {
		t.Fatalf("failed to create sqlite backend: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i, hit := range []bool{true, false, false} {
		rec := &storage.Record{
			ID:        "rec-" + string(rune('a'+i)),
			Query:     "q",
			Page:      1,
			Engines:   []string{"google"},
			CacheHit:  hit,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := b.Save(ctx, rec); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	hit := true
	records, err := b.Query(ctx, storage.Filter{CacheHit: &hit})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 cache-hit record, got %d", len(records))
	}

	records, err = b.Query(ctx, storage.Filter{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected limit 2, got %d", len(records))
	}
	// Newest first
	if !records[0].CreatedAt.After(records[1].CreatedAt) {
		t.Error("expected records ordered newest first")
	}
}
