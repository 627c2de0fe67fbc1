package ghclient

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prpulse/prpulse/schema"
)

// Rate limit response headers, per the GitHub REST convention.
const (
	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateReset     = "X-RateLimit-Reset"
)

// updateRateLimit refreshes the client's quota window from response headers.
// Headers that are absent or unparseable leave the previous state untouched.
// Remaining is clamped so it never goes negative.
func (c *Client) updateRateLimit(resp *http.Response) {
	remainingStr := resp.Header.Get(headerRateRemaining)
	resetStr := resp.Header.Get(headerRateReset)
	if remainingStr == "" && resetStr == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if remaining, err := strconv.Atoi(remainingStr); err == nil {
		if remaining < 0 {
			remaining = 0
		}
		c.rate.Remaining = remaining
	}
	if resetEpoch, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
		c.rate.ResetAt = time.Unix(resetEpoch, 0)
	}
}

// RateLimit returns a snapshot of the current quota window.
func (c *Client) RateLimit() schema.RateLimitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// waitForQuota blocks until the quota window allows another request. This is
// a precondition check before each dispatch, not a reactive retry: when the
// previous response reported zero remaining calls and the reset instant is
// still in the future, the client sleeps at least until that instant.
func (c *Client) waitForQuota() {
	c.mu.Lock()
	remaining := c.rate.Remaining
	resetAt := c.rate.ResetAt
	initialized := !resetAt.IsZero()
	c.mu.Unlock()

	if !initialized || remaining > 0 {
		return
	}

	now := c.clock.Now()
	if wait := resetAt.Sub(now); wait > 0 {
		c.clock.Sleep(wait)
	}

	// The window has reset; allow the next request to probe for fresh headers.
	c.mu.Lock()
	c.rate.Remaining = 1
	c.mu.Unlock()
}
