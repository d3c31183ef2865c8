// Package rank orders aggregated search results by an additive integer
// relevance score. Ranking is deterministic for a fixed query, input order,
// and clock.
package rank

import (
	"sort"
	"strings"
	"time"

	"github.com/FranksOps/skim/internal/result"
)

// dateLayout is the display form the parser normalizes ISO dates into.
// Freshness scoring reads only this layout; dates kept as raw matched text
// earn no freshness points.
const dateLayout = "Jan 02, 2006"

const (
	exactTitlePoints   = 20
	exactSnippetPoints = 10
	termTitlePoints    = 3
	termSnippetPoints  = 2
	trustedTLDPoints   = 8
	rootDomainPoints   = 5
	freshPoints        = 20
	recentPoints       = 10
	categoryPoints     = 5
)

var trustedTLDs = []string{".edu", ".gov", ".org"}

var boostedCategories = map[result.Category]bool{
	result.News:     true,
	result.Official: true,
	result.Tech:     true,
	result.Academic: true,
}

// Ranker scores and orders result sets. The zero value is not usable;
// construct with New.
type Ranker struct {
	now func() time.Time
}

// New returns a Ranker using the wall clock for freshness scoring.
func New() *Ranker {
	return &Ranker{now: time.Now}
}

// NewWithClock returns a Ranker with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Ranker {
	return &Ranker{now: now}
}

// Rank assigns a score to every regular result and returns the set ordered:
// info boxes first in their original order, then regular results descending
// by score. The sort is stable, so equal scores keep parser emission order.
func (rk *Ranker) Rank(query string, results []result.SearchResult) []result.SearchResult {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	terms := strings.Fields(queryLower)

	ranked := make([]result.SearchResult, len(results))
	copy(ranked, results)

	for i := range ranked {
		if ranked[i].Kind == result.KindInfoBox {
			continue
		}
		ranked[i].Score = rk.score(queryLower, terms, ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if (ranked[i].Kind == result.KindInfoBox) != (ranked[j].Kind == result.KindInfoBox) {
			return ranked[i].Kind == result.KindInfoBox
		}
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

func (rk *Ranker) score(queryLower string, terms []string, r result.SearchResult) int {
	titleLower := strings.ToLower(r.Title)
	snippetLower := strings.ToLower(r.Snippet)

	score := 0

	if queryLower != "" && strings.Contains(titleLower, queryLower) {
		score += exactTitlePoints
	}
	if queryLower != "" && strings.Contains(snippetLower, queryLower) {
		score += exactSnippetPoints
	}

	for _, term := range terms {
		if strings.Contains(titleLower, term) {
			score += termTitlePoints
		}
		if strings.Contains(snippetLower, term) {
			score += termSnippetPoints
		}
	}

	domain := result.Domain(r.URL)
	for _, tld := range trustedTLDs {
		if strings.HasSuffix(domain, tld) {
			score += trustedTLDPoints
			break
		}
	}
	if domain != "" && len(strings.Split(domain, ".")) == 2 {
		score += rootDomainPoints
	}

	score += rk.freshness(r.Date)

	if boostedCategories[r.Category] {
		score += categoryPoints
	}

	return score
}

func (rk *Ranker) freshness(date string) int {
	if date == "" {
		return 0
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0
	}
	age := rk.now().Sub(parsed)
	switch {
	case age < 30*24*time.Hour:
		return freshPoints
	case age < 90*24*time.Hour:
		return recentPoints
	}
	return 0
}
