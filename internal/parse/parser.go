// Package parse turns raw results-page HTML into normalized SearchResult
// records. Parsing is defensive throughout: a malformed candidate is logged
// and skipped, never allowed to abort the rest of the page.
package parse

import (
	"log/slog"
	"strings"

	"github.com/FranksOps/skim/internal/categorize"
	"github.com/FranksOps/skim/internal/result"
	"github.com/PuerkitoBio/goquery"
)

// Parser extracts results from one page of engine HTML.
type Parser struct {
	rules  Ruleset
	logger *slog.Logger
}

// New builds a Parser with the given selector ruleset.
func New(rules Ruleset, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{rules: rules, logger: logger}
}

// Parse extracts every result it can from the HTML. Document order is
// preserved; the info box, when present, is always first. HTML that does
// not parse at all yields an empty slice.
func (p *Parser) Parse(html string) []result.SearchResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		p.logger.Error("html parse failed", "err", err)
		return nil
	}

	var results []result.SearchResult

	if box, ok := p.extractInfoBox(doc); ok {
		results = append(results, box)
	}

	// Old and new layout markers can nest (the new container sits inside
	// the old one), so identical URLs are collapsed to one record.
	containerSel := strings.Join(p.rules.ResultContainers, ", ")
	seenURL := map[string]bool{}
	doc.Find(containerSel).Each(func(i int, div *goquery.Selection) {
		r, ok := p.extractOrganic(div)
		if !ok || seenURL[r.URL] {
			return
		}
		seenURL[r.URL] = true
		results = append(results, r)
	})

	return results
}

// extractInfoBox pulls the knowledge-panel summary if one exists. Every
// field degrades to absent rather than failing: selectors drift and a
// partial panel is still worth emitting when it has a title.
func (p *Parser) extractInfoBox(doc *goquery.Document) (result.SearchResult, bool) {
	box := doc.Find(p.rules.InfoBox).First()
	if box.Length() == 0 {
		return result.SearchResult{}, false
	}

	title := firstText(box, p.rules.InfoBoxTitle, p.rules.InfoBoxTitleFall)
	if title == "" {
		return result.SearchResult{}, false
	}

	desc := firstText(box, p.rules.InfoBoxDesc, p.rules.InfoBoxDescFall)

	r := result.SearchResult{
		Title:    title,
		Snippet:  desc,
		Category: result.General,
		Kind:     result.KindInfoBox,
	}

	if img := box.Find(p.rules.InfoBoxImage).First(); img.Length() > 0 {
		r.URL, _ = img.Attr("src")
	} else if img := box.Find(p.rules.InfoBoxImageFall).First(); img.Length() > 0 {
		r.URL, _ = img.Attr("src")
	}

	return r, true
}

func (p *Parser) extractOrganic(div *goquery.Selection) (result.SearchResult, bool) {
	title := ""
	for _, h := range p.rules.TitleHeadings {
		if t := strings.TrimSpace(div.Find(h).First().Text()); t != "" {
			title = t
			break
		}
	}
	if title == "" {
		return result.SearchResult{}, false
	}

	href, ok := div.Find("a[href]").First().Attr("href")
	if !ok || href == "" {
		return result.SearchResult{}, false
	}
	href = unwrapRedirect(href)

	snippet := firstText(div, p.rules.SnippetPrimary, p.rules.SnippetFallback)

	r := result.New(title, href, snippet)
	r.Date = extractDate(snippet)
	r.Category = categorize.Categorize(r.URL, r.Title, r.Snippet)

	if !r.Valid() {
		p.logger.Warn("dropping malformed result", "title", title, "url", href)
		return result.SearchResult{}, false
	}
	return r, true
}

// unwrapRedirect resolves the /url?q=<target>&... wrapper engines put
// around organic hrefs.
func unwrapRedirect(href string) string {
	const marker = "/url?q="
	idx := strings.Index(href, marker)
	if idx != 0 {
		return href
	}
	target := href[len(marker):]
	if amp := strings.IndexByte(target, '&'); amp >= 0 {
		target = target[:amp]
	}
	return target
}

// firstText returns the trimmed text of the first node matching the primary
// selector, falling back to the secondary.
func firstText(s *goquery.Selection, primary, fallback string) string {
	if t := strings.TrimSpace(s.Find(primary).First().Text()); t != "" {
		return t
	}
	if fallback == "" {
		return ""
	}
	return strings.TrimSpace(s.Find(fallback).First().Text())
}
