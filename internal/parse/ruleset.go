package parse

// Ruleset names the CSS selectors the parser depends on. Upstream markup
// drifts over time, so selectors are data: each role carries a primary and
// a fallback, and swapping in a new Ruleset is a configuration change.
type Ruleset struct {
	// Organic result containers; both layouts are searched.
	ResultContainers []string

	TitleHeadings []string

	SnippetPrimary  string
	SnippetFallback string

	InfoBox          string
	InfoBoxTitle     string
	InfoBoxTitleFall string
	InfoBoxDesc      string
	InfoBoxDescFall  string
	InfoBoxImage     string
	InfoBoxImageFall string
}

// DefaultRuleset matches the result markup Google has served across its two
// recent layout generations, plus generic class names other engines use.
func DefaultRuleset() Ruleset {
	return Ruleset{
		ResultContainers: []string{"div.g", "div.tF2Cxc", "article.result", "div.result"},
		TitleHeadings:    []string{"h3", "h2", "h1"},
		SnippetPrimary:   "div.VwiC3b, span.VwiC3b",
		SnippetFallback:  "div.snippet, span.snippet, div.description, span.description",
		InfoBox:          "div.kp-wholepage",
		InfoBoxTitle:     "h2.qrShPb",
		InfoBoxTitleFall: "div.kno-ecr-pt",
		InfoBoxDesc:      "div.LGOjhe",
		InfoBoxDescFall:  "div.kno-rdesc",
		InfoBoxImage:     "g-img img",
		InfoBoxImageFall: "img.kno-fb-ctx",
	}
}
