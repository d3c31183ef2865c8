// Package useragent supplies randomized browser identities for outbound
// search requests. Every attempt gets a fresh User-Agent plus the fixed
// header set real browsers send, which keeps trivially fingerprinted
// blocking at bay.
package useragent

import (
	"math/rand/v2"
	"net/http"
)

// Fallback is used when a pool is constructed empty.
const Fallback = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// defaultAgents covers current desktop Chrome, Firefox, and Safari builds.
var defaultAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/132.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
}

// Pool hands out User-Agent strings at random. The agent slice is immutable
// after construction, so the pool is safe for concurrent use.
type Pool struct {
	agents []string
}

// NewPool builds a pool from the given agents, falling back to the default
// set when none are provided.
func NewPool(agents []string) *Pool {
	if len(agents) == 0 {
		agents = defaultAgents
	}
	copied := make([]string, len(agents))
	copy(copied, agents)
	return &Pool{agents: copied}
}

// Random returns a uniformly random User-Agent from the pool.
func (p *Pool) Random() string {
	if len(p.agents) == 0 {
		return Fallback
	}
	return p.agents[rand.IntN(len(p.agents))]
}

// Headers builds the header set for one request attempt: a random
// User-Agent and the fixed Accept/Accept-Language/DNT/Connection values.
func (p *Pool) Headers() http.Header {
	h := http.Header{}
	h.Set("User-Agent", p.Random())
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.5")
	h.Set("DNT", "1")
	h.Set("Connection", "keep-alive")
	return h
}
