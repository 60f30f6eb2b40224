// Package webcache provides the shared HTTP client for outbound API calls
// (Wikipedia, GitHub). Responses are cached in memory per RFC 7234 so repeat
// lookups don't hit the upstream again.
package webcache

import (
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
)

const DefaultTimeout = 10 * time.Second

func NewClient() *http.Client {
	transport := httpcache.NewMemoryCacheTransport()
	return &http.Client{
		Transport: transport,
		Timeout:   DefaultTimeout,
	}
}
