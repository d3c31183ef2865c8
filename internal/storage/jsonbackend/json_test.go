package jsonbackend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/FranksOps/skim/internal/storage"
)

func TestJSONBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.ndjson")
	b, err := New(path)
	if err != nil {
		t.Fatalf("failed to create json backend: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	base := time.Now().UTC()

	recs := []*storage.Record{
		{ID: "1", Query: "first", Page: 1, Engines: []string{"google"}, ResultCount: 3, CreatedAt: base},
		{ID: "2", Query: "second", Page: 1, Engines: []string{"bing"}, ResultCount: 0, Error: "all backends failed", CreatedAt: base.Add(time.Minute)},
	}
	for _, r := range recs {
		if err := b.Save(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	all, err := b.Query(ctx, storage.Filter{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	if all[0].ID != "2" {
		t.Errorf("expected newest first, got %s", all[0].ID)
	}
	if all[0].Error != "all backends failed" {
		t.Errorf("error field did not round-trip: %q", all[0].Error)
	}
}

func TestJSONBackend_QueryFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.ndjson")
	b, err := New(path)
	if err != nil {
		t.Fatalf("failed to create json backend: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	_ = b.Save(ctx, &storage.Record{ID: "1", Query: "alpha", CreatedAt: time.Now()})
	_ = b.Save(ctx, &storage.Record{ID: "2", Query: "beta", CreatedAt: time.Now()})

	got, err := b.Query(ctx, storage.Filter{Query: "beta"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("expected only the beta record, got %+v", got)
	}
}

func TestJSONBackend_OffsetPastEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.ndjson")
	b, err := New(path)
	if err != nil {
		t.Fatalf("failed to create json backend: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	_ = b.Save(ctx, &storage.Record{ID: "1", Query: "q", CreatedAt: time.Now()})

	got, err := b.Query(ctx, storage.Filter{Offset: 5})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result past end, got %d", len(got))
	}
}
