package fetch

import (
	"bytes"
	"net/http"
)

// Class buckets an HTTP response for the retry loop.
type Class int

const (
	// ClassSuccess ends the loop and returns the response.
	ClassSuccess Class = iota
	// ClassRateLimited retries after an extra doubled delay.
	ClassRateLimited
	// ClassRetryable retries with the standard pacing delay.
	ClassRetryable
)

// Challenge-page markers. Engines sometimes serve an interstitial with a
// 200 status; treating those as success would feed captcha HTML to the
// parser, so they are classified as rate limiting instead.
var blockSignatures = [][]byte{
	[]byte("detected unusual traffic"),
	[]byte("g-recaptcha"),
	[]byte("cf-turnstile"),
	[]byte("cf-browser-verification"),
	[]byte("Attention Required! | Cloudflare"),
	[]byte("geo.captcha-delivery.com"),
}

// Classify buckets a response by status code and, for 200s, by challenge
// signatures in the body.
func Classify(status int, body []byte) Class {
	switch status {
	case http.StatusOK:
		for _, sig := range blockSignatures {
			if bytes.Contains(body, sig) {
				return ClassRateLimited
			}
		}
		return ClassSuccess
	case http.StatusTooManyRequests, http.StatusForbidden:
		return ClassRateLimited
	default:
		return ClassRetryable
	}
}
