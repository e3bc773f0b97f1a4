package httpx

import (
	"net/http"
	"time"
)

// NewDefault returns an HTTP client with sane transport limits for
// long-running upstream API calls.
func NewDefault(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        16,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
