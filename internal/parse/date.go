package parse

import (
	"regexp"
	"time"
)

// Snippet date shapes, in match priority order: "12 Mar 2024" style,
// ISO 2024-03-12, and 3/12/2024.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}\s(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
}

const displayLayout = "Jan 02, 2006"

// extractDate scans text for a date. ISO matches normalize to the
// "Jan 02, 2006" display form; other matched shapes are kept as raw text.
// Returns "" when nothing matches.
func extractDate(text string) string {
	for _, pat := range datePatterns {
		match := pat.FindString(text)
		if match == "" {
			continue
		}
		if parsed, err := time.Parse("2006-01-02", match); err == nil {
			return parsed.Format(displayLayout)
		}
		return match
	}
	return ""
}
