package rank

import (
	"testing"
	"time"

	"github.com/FranksOps/skim/internal/result"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRank_ExactTitleMatchWins(t *testing.T) {
	rk := New()

	results := []result.SearchResult{
		{Title: "Unrelated page", URL: "https://a.example.com/x", Kind: result.KindRegular},
		{Title: "Apple M3 chip deep dive", URL: "https://b.example.com/y", Kind: result.KindRegular},
		{Title: "Another unrelated page", URL: "https://c.example.com/z", Kind: result.KindRegular},
		{Title: "Everything about the apple m3 chip", URL: "https://d.example.com/w", Kind: result.KindRegular},
	}

	ranked := rk.Rank("apple m3 chip", results)

	for i := 0; i < 2; i++ {
		if ranked[i].Score < 20 {
			t.Errorf("position %d: expected exact-match score >= 20, got %d (%q)", i, ranked[i].Score, ranked[i].Title)
		}
	}
	matchLow := ranked[1].Score
	missHigh := ranked[2].Score
	if matchLow-missHigh < 20 {
		t.Errorf("expected matching results to lead by >= 20 points, lead was %d", matchLow-missHigh)
	}
}

func TestRank_StableOnEqualScores(t *testing.T) {
	rk := New()

	// Identical scoring inputs; only the order distinguishes them.
	results := []result.SearchResult{
		{Title: "first", URL: "https://sub.one.example.com/a", Kind: result.KindRegular},
		{Title: "second", URL: "https://sub.two.example.com/b", Kind: result.KindRegular},
		{Title: "third", URL: "https://sub.three.example.com/c", Kind: result.KindRegular},
	}

	ranked := rk.Rank("query", results)

	if ranked[0].Title != "first" || ranked[1].Title != "second" || ranked[2].Title != "third" {
		t.Errorf("equal-score results reordered: %q, %q, %q", ranked[0].Title, ranked[1].Title, ranked[2].Title)
	}
	for _, r := range ranked {
		if ranked[0].Score != r.Score {
			t.Fatalf("fixture broken: scores differ (%d vs %d)", ranked[0].Score, r.Score)
		}
	}
}

func TestRank_InfoBoxAlwaysFirst(t *testing.T) {
	rk := New()

	results := []result.SearchResult{
		{Title: "go concurrency patterns in depth", Snippet: "go concurrency everywhere",
			URL: "https://go.dev/blog", Category: result.Tech, Kind: result.KindRegular},
		{Title: "panel", Kind: result.KindInfoBox},
	}

	ranked := rk.Rank("go concurrency", results)

	if ranked[0].Kind != result.KindInfoBox {
		t.Errorf("expected info box first, got %q", ranked[0].Kind)
	}
	if ranked[1].Score <= 0 {
		t.Errorf("regular result should have scored, got %d", ranked[1].Score)
	}
}

func TestRank_TrustedDomainAndRootBonus(t *testing.T) {
	rk := New()

	results := []result.SearchResult{
		{Title: "a", URL: "https://deep.sub.example.com/p", Kind: result.KindRegular},
		{Title: "b", URL: "https://mit.edu/p", Kind: result.KindRegular},
	}

	ranked := rk.Rank("nothing matches", results)

	// mit.edu earns trusted TLD (+8) and root domain (+5); the other earns nothing.
	if ranked[0].URL != "https://mit.edu/p" {
		t.Fatalf("expected trusted root domain first, got %q", ranked[0].URL)
	}
	if got := ranked[0].Score - ranked[1].Score; got != 13 {
		t.Errorf("expected 13 point lead, got %d", got)
	}
}

func TestFreshness(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	rk := NewWithClock(fixedClock(now))

	cases := []struct {
		date string
		want int
	}{
		{"Jun 01, 2025", freshPoints},
		{"Apr 01, 2025", recentPoints},
		{"Jan 01, 2024", 0},
		{"", 0},
		{"15 June 2025", 0}, // raw matched text, not the normalized layout
	}

	for _, tc := range cases {
		if got := rk.freshness(tc.date); got != tc.want {
			t.Errorf("freshness(%q) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	rk := New()

	in := []result.SearchResult{
		{Title: "go", URL: "https://go.dev/a", Kind: result.KindRegular},
	}
	_ = rk.Rank("go", in)

	if in[0].Score != 0 {
		t.Errorf("input slice mutated: score %d", in[0].Score)
	}
}
