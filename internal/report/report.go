// Package report summarizes archived search records for operators.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/FranksOps/skim/internal/storage"
)

// Summary aggregates metrics over a set of archived searches.
type Summary struct {
	TotalSearches int
	CacheHits     int
	EmptyResults  int
	Errors        int
	EngineAsks    map[string]int
	MeanDuration  time.Duration
	StartTime     time.Time
	EndTime       time.Time
}

// CacheHitRate returns hits over total, 0 when the set is empty.
func (s Summary) CacheHitRate() float64 {
	if s.TotalSearches == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(s.TotalSearches)
}

// GenerateSummary folds archive records into a Summary.
func GenerateSummary(records []*storage.Record) Summary {
	s := Summary{EngineAsks: make(map[string]int)}
	if len(records) == 0 {
		return s
	}

	s.StartTime = records[0].CreatedAt
	s.EndTime = records[0].CreatedAt

	var totalDuration time.Duration
	for _, r := range records {
		s.TotalSearches++
		if r.CacheHit {
			s.CacheHits++
		}
		if r.ResultCount == 0 {
			s.EmptyResults++
		}
		if r.Error != "" {
			s.Errors++
		}
		for _, e := range r.Engines {
			s.EngineAsks[e]++
		}
		totalDuration += r.Duration

		if r.CreatedAt.Before(s.StartTime) {
			s.StartTime = r.CreatedAt
		}
		if r.CreatedAt.After(s.EndTime) {
			s.EndTime = r.CreatedAt
		}
	}

	s.MeanDuration = totalDuration / time.Duration(s.TotalSearches)
	return s
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, summary Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// WriteText writes a human-readable summary.
func WriteText(w io.Writer, summary Summary) error {
	const textTmpl = `Skim Search Summary
-------------------
Time:           {{.StartTime.Format "2006-01-02 15:04:05"}} - {{.EndTime.Format "2006-01-02 15:04:05"}}
Searches:       {{.TotalSearches}}
Cache hits:     {{.CacheHits}} ({{printf "%.0f%%" (mulf .CacheHitRate 100)}})
Empty results:  {{.EmptyResults}}
Errors:         {{.Errors}}
Mean duration:  {{.MeanDuration}}

Engine asks:
{{- range $engine, $count := .EngineAsks}}
  {{$engine}}: {{$count}}
{{- else}}
  None
{{- end}}
`

	t, err := template.New("textReport").Funcs(template.FuncMap{
		"mulf": func(a, b float64) float64 { return a * b },
	}).Parse(textTmpl)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if err := t.Execute(w, summary); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
