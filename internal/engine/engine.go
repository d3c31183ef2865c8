// Package engine describes the upstream search backends a query fans out
// to. Engines are plain data: a name plus an HTML endpoint taking the
// common (q, start, num, hl, safe) parameter set.
package engine

import (
	"net/url"
	"strconv"
)

// resultsPerPage drives the start offset calculation.
const resultsPerPage = 10

// SuggestURL is the completion endpoint used for type-ahead suggestions.
// The response is a JSON array whose second element is the suggestion list.
const SuggestURL = "https://suggestqueries.google.com/complete/search"

// Engine is one upstream search backend.
type Engine struct {
	Name    string
	BaseURL string
}

// Params builds the query parameters for a (query, page) request.
// Page is 1-based.
func (e Engine) Params(query string, page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{
		"q":     {query},
		"start": {strconv.Itoa((page - 1) * resultsPerPage)},
		"num":   {strconv.Itoa(resultsPerPage)},
		"hl":    {"en"},
		"safe":  {"active"},
	}
}

// SuggestParams builds the parameters for the suggestion endpoint.
func SuggestParams(query string) url.Values {
	return url.Values{
		"client": {"chrome"},
		"q":      {query},
	}
}

// Defaults returns the stock engine set: Google primary, Bing backup.
func Defaults() []Engine {
	return []Engine{
		{Name: "google", BaseURL: "https://www.google.com/search"},
		{Name: "bing", BaseURL: "https://www.bing.com/search"},
	}
}
