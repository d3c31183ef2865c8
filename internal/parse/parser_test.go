package parse

import (
	"testing"

	"github.com/FranksOps/skim/internal/result"
)

func newTestParser() *Parser {
	return New(DefaultRuleset(), nil)
}

const organicPage = `
<html><body>
<div class="g">
  <a href="/url?q=https://go.dev/blog/pipelines&sa=U&ved=x"><h3>Go Concurrency Patterns</h3></a>
  <div class="VwiC3b">Published 2024-03-12. Pipelines and cancellation in Go.</div>
</div>
<div class="tF2Cxc">
  <a href="https://news.example.com/latest-go-release"><h3>Latest Go release news</h3></a>
  <span class="VwiC3b">Breaking coverage of the release.</span>
</div>
<div class="g">
  <a href="https://no-title.example.com/"></a>
  <div class="VwiC3b">Container without a heading is skipped.</div>
</div>
<div class="g">
  <h3>No link here</h3>
  <div class="VwiC3b">Container without an href is skipped.</div>
</div>
</body></html>`

func TestParse_OrganicResults(t *testing.T) {
	results := newTestParser().Parse(organicPage)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}

	first := results[0]
	if first.Title != "Go Concurrency Patterns" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.URL != "https://go.dev/blog/pipelines" {
		t.Errorf("redirect wrapper not unwrapped: %q", first.URL)
	}
	if first.Date != "Mar 12, 2024" {
		t.Errorf("expected normalized ISO date, got %q", first.Date)
	}
	if first.Kind != result.KindRegular {
		t.Errorf("expected regular kind, got %q", first.Kind)
	}

	second := results[1]
	if second.URL != "https://news.example.com/latest-go-release" {
		t.Errorf("unexpected second URL %q", second.URL)
	}
	if second.Category != result.News {
		t.Errorf("expected news category, got %q", second.Category)
	}
}

func TestParse_DocumentOrderPreserved(t *testing.T) {
	html := `
<div class="g"><a href="https://a.example.com/"><h3>alpha</h3></a></div>
<div class="g"><a href="https://b.example.com/"><h3>beta</h3></a></div>
<div class="g"><a href="https://c.example.com/"><h3>gamma</h3></a></div>`

	results := newTestParser().Parse(html)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if results[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, results[i].Title)
		}
	}
}

func TestParse_InfoBoxFirst(t *testing.T) {
	html := `
<div class="g"><a href="https://a.example.com/"><h3>organic</h3></a></div>
<div class="kp-wholepage">
  <h2 class="qrShPb">Go (programming language)</h2>
  <div class="LGOjhe">Statically typed, compiled language.</div>
</div>`

	results := newTestParser().Parse(html)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Kind != result.KindInfoBox {
		t.Fatalf("info box must come first, got %q", results[0].Kind)
	}
	if results[0].Title != "Go (programming language)" {
		t.Errorf("unexpected info box title %q", results[0].Title)
	}
	if results[0].Snippet != "Statically typed, compiled language." {
		t.Errorf("unexpected info box description %q", results[0].Snippet)
	}
}

func TestParse_InfoBoxFallbackSelectors(t *testing.T) {
	html := `
<div class="kp-wholepage">
  <div class="kno-ecr-pt">Fallback Title</div>
  <div class="kno-rdesc">Fallback description.</div>
</div>`

	results := newTestParser().Parse(html)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Fallback Title" || results[0].Snippet != "Fallback description." {
		t.Errorf("fallback selectors not applied: %+v", results[0])
	}
}

func TestParse_InfoBoxWithoutTitleAbsent(t *testing.T) {
	html := `<div class="kp-wholepage"><div class="LGOjhe">desc only</div></div>`

	if results := newTestParser().Parse(html); len(results) != 0 {
		t.Errorf("titleless info box should be absent, got %+v", results)
	}
}

func TestParse_NestedLayoutsDeduplicated(t *testing.T) {
	// New-layout container nested inside an old-layout one: same content,
	// one record.
	html := `
<div class="g">
  <div class="tF2Cxc">
    <a href="https://a.example.com/"><h3>once</h3></a>
  </div>
</div>`

	results := newTestParser().Parse(html)
	if len(results) != 1 {
		t.Fatalf("expected nested layouts to deduplicate, got %d results", len(results))
	}
}

func TestParse_MissingSnippetTolerated(t *testing.T) {
	html := `<div class="g"><a href="https://a.example.com/"><h3>bare</h3></a></div>`

	results := newTestParser().Parse(html)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Snippet != "" {
		t.Errorf("expected empty snippet, got %q", results[0].Snippet)
	}
	if results[0].Date != "" {
		t.Errorf("expected no date without snippet, got %q", results[0].Date)
	}
}

func TestParse_GarbageHTML(t *testing.T) {
	if results := newTestParser().Parse("<<<>>> not html at all"); len(results) != 0 {
		t.Errorf("expected no results from garbage, got %+v", results)
	}
	if results := newTestParser().Parse(""); len(results) != 0 {
		t.Errorf("expected no results from empty input, got %+v", results)
	}
}

func TestUnwrapRedirect(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/url?q=https://target.example.com/page&sa=U", "https://target.example.com/page"},
		{"/url?q=https://target.example.com/page", "https://target.example.com/page"},
		{"https://direct.example.com/", "https://direct.example.com/"},
		{"/relative/path", "/relative/path"},
	}
	for _, tc := range cases {
		if got := unwrapRedirect(tc.in); got != tc.want {
			t.Errorf("unwrapRedirect(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractDate(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Published 2024-03-12 by staff", "Mar 12, 2024"},
		{"Updated 5 March 2024 at noon", "5 March 2024"},
		{"Posted 3/12/2024", "3/12/2024"},
		{"no date here", ""},
	}
	for _, tc := range cases {
		if got := extractDate(tc.in); got != tc.want {
			t.Errorf("extractDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
