package result

import (
	"net/url"
	"strings"
)

// Category classifies a search result by intent.
type Category string

const (
	News     Category = "news"
	Shopping Category = "shopping"
	Social   Category = "social"
	Video    Category = "video"
	Academic Category = "academic"
	Official Category = "official"
	Forums   Category = "forums"
	Tech     Category = "tech"
	General  Category = "general"
)

// AllCategories returns every valid category in canonical match order.
// The order doubles as the tie-break when several keyword sets match.
func AllCategories() []Category {
	return []Category{News, Shopping, Social, Video, Academic, Official, Forums, Tech, General}
}

// Kind distinguishes the single knowledge-panel style summary from
// ordinary organic listings.
type Kind string

const (
	KindInfoBox Kind = "info_box"
	KindRegular Kind = "regular"
)

// displayURLMax is the length at which DisplayURL truncates.
const displayURLMax = 60

// SearchResult is one item discovered on an upstream results page.
// Score is zero until the ranker has run.
type SearchResult struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	DisplayURL string   `json:"display_url"`
	Snippet    string   `json:"snippet"`
	Category   Category `json:"category"`
	Date       string   `json:"date,omitempty"`
	Favicon    string   `json:"favicon"`
	Score      int      `json:"score"`
	Kind       Kind     `json:"kind"`
	Engine     string   `json:"engine,omitempty"`
}

// New builds a regular result with its derived fields populated.
func New(title, rawURL, snippet string) SearchResult {
	return SearchResult{
		Title:      strings.TrimSpace(title),
		URL:        rawURL,
		DisplayURL: DisplayURL(rawURL),
		Snippet:    strings.TrimSpace(snippet),
		Category:   General,
		Favicon:    FaviconURL(rawURL),
		Kind:       KindRegular,
	}
}

// DisplayURL truncates long URLs for presentation: the first 60 characters
// followed by an ellipsis marker. Short URLs pass through unchanged.
func DisplayURL(rawURL string) string {
	if len(rawURL) > displayURLMax {
		return rawURL[:displayURLMax] + "..."
	}
	return rawURL
}

// FaviconURL builds the favicon service URL for a result's domain.
func FaviconURL(rawURL string) string {
	return "https://www.google.com/s2/favicons?domain=" + rawURL
}

// Domain returns the lowercased hostname of the result URL, or "" if the
// URL does not parse.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Valid reports whether a result satisfies the model invariants: regular
// results need a non-empty title and URL, info boxes only a title.
func (r SearchResult) Valid() bool {
	if strings.TrimSpace(r.Title) == "" {
		return false
	}
	if r.Kind == KindRegular && r.URL == "" {
		return false
	}
	return true
}
