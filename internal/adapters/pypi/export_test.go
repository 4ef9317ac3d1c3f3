package pypi

import (
	"net/http"
	"time"
)

// NewClientWithHTTP exposes the client constructor taking a custom http.Client.
func NewClientWithHTTP(baseURL string, client *http.Client) *Client {
	return newClientWithHTTP(baseURL, client)
}

// SetClock replaces the cache clock.
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}
