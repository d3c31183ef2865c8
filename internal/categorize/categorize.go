// Package categorize maps search results onto a fixed category set using
// keyword and domain heuristics. Classification is deterministic: categories
// are tried in the canonical order from the result package and the first
// match wins.
package categorize

import (
	"strings"

	"github.com/FranksOps/skim/internal/result"
)

var categoryKeywords = map[result.Category][]string{
	result.News: {
		"news", "breaking", "latest", "report", "update", "press",
	},
	result.Shopping: {
		"shop", "store", "buy", "price", "deal", "amazon",
	},
	result.Social: {
		"facebook", "twitter", "instagram", "linkedin", "reddit",
	},
	result.Video: {
		"youtube", "vimeo", "video", "watch", "stream",
	},
	result.Academic: {
		"research", "study", "paper", "journal", ".edu",
	},
	result.Official: {
		"official", "gov", "organization", ".gov", ".org",
	},
	result.Forums: {
		"reddit.com", "quora.com", "forum", "discussion",
	},
	result.Tech: {
		"technology", "software", "hardware", "review", "digital", "gadget",
	},
}

// Categorize classifies a result from its URL, title, and snippet.
// Matching is case-insensitive: a keyword hits if it is a substring of the
// hostname or of the combined title+snippet text. Results matching nothing
// are general.
func Categorize(rawURL, title, snippet string) result.Category {
	domain := result.Domain(rawURL)
	text := strings.ToLower(title) + " " + strings.ToLower(snippet)

	for _, cat := range result.AllCategories() {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(domain, kw) || strings.Contains(text, kw) {
				return cat
			}
		}
	}
	return result.General
}
