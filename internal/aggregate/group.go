package aggregate

import "github.com/FranksOps/skim/internal/result"

// GroupByCategory buckets ranked results by category for presentation.
// Info boxes are excluded; within each bucket the ranked order is kept.
func GroupByCategory(results []result.SearchResult) map[result.Category][]result.SearchResult {
	grouped := make(map[result.Category][]result.SearchResult)
	for _, r := range results {
		if r.Kind == result.KindInfoBox {
			continue
		}
		grouped[r.Category] = append(grouped[r.Category], r)
	}
	return grouped
}
