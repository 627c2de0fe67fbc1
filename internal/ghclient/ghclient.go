// Package ghclient implements the rate-limited, paginated REST client that
// all analytics sit on. It tracks the quota window reported by response
// headers, blocks before dispatch when the quota is exhausted, retries
// transient failures with exponential backoff, and follows Link-header
// pagination cursors.
package ghclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/schema"
)

// Page is the result of fetching a single collection page.
type Page struct {
	Items     []json.RawMessage
	RateLimit schema.RateLimitState
	HasNext   bool
}

// FetchOptions constrain a FetchAll run.
type FetchOptions struct {
	// PerPage is the page size requested from the server.
	PerPage int

	// FetchLimit caps the total number of items returned.
	// contract.UnboundedFetch (0) means no ceiling.
	FetchLimit int

	// Params holds extra query parameters attached to every page request.
	Params url.Values
}

// Client issues authenticated requests against a GitHub-style REST API.
// A Client owns its RateLimitState exclusively; the pipeline issues requests
// one at a time, and the mutex keeps the state safe if a caller ever does not.
type Client struct {
	cfg        *contract.Config
	httpClient *http.Client
	clock      contract.Clock

	mu   sync.Mutex
	rate schema.RateLimitState

	requests atomic.Int64
}

var _ contract.SourceClient = (*Client)(nil) // Compile-time check

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock overrides the clock used for rate-limit waits and retry backoff.
func WithClock(clock contract.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// New creates a client from a validated configuration.
func New(cfg *contract.Config, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		clock:      contract.SystemClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestCount returns the number of HTTP requests issued so far.
func (c *Client) RequestCount() int64 {
	return c.requests.Load()
}

// FetchPage fetches one page of a collection endpoint. The endpoint is a
// path relative to the API base URL, e.g. "/repos/octocat/hello-world/pulls".
func (c *Client) FetchPage(ctx context.Context, endpoint string, page, perPage int, params url.Values) (*Page, error) {
	query := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("per_page", fmt.Sprintf("%d", perPage))

	res, err := c.getWithRetry(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:     res.items,
		RateLimit: c.RateLimit(),
		HasNext:   hasNextPage(res.link),
	}, nil
}

// FetchAll walks a collection endpoint page by page and returns the items in
// the order received. It stops when the server stops advertising a next page,
// when a page comes back short, or when the caller's item ceiling is reached.
// Pagination is strictly sequential: cursor continuation depends on the prior
// response.
func (c *Client) FetchAll(ctx context.Context, endpoint string, opts FetchOptions) ([]json.RawMessage, error) {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = contract.DefaultPerPage
	}

	var items []json.RawMessage
	for page := 1; ; page++ {
		p, err := c.FetchPage(ctx, endpoint, page, perPage, opts.Params)
		if err != nil {
			return nil, err
		}
		items = append(items, p.Items...)

		if opts.FetchLimit != contract.UnboundedFetch && len(items) >= opts.FetchLimit {
			return items[:opts.FetchLimit], nil
		}
		if !p.HasNext || len(p.Items) < perPage {
			return items, nil
		}
	}
}

// pageResult is a successfully fetched and decoded collection page.
type pageResult struct {
	items []json.RawMessage
	link  string
}

// getWithRetry performs a GET with the full retry policy: a quota wait before
// every dispatch, backoff on transient failures, an uncounted wait-and-reissue
// on rate-limited 403s, and immediate propagation of fatal statuses. Reading
// and decoding the body happen inside the loop, so a connection dropped
// mid-body or a garbled page consume retry attempts like any other transient
// failure before turning fatal.
func (c *Client) getWithRetry(ctx context.Context, endpoint string, query url.Values) (*pageResult, error) {
	fullURL := c.cfg.APIBaseURL + endpoint
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	attempt := 0
	for {
		c.waitForQuota()

		resp, err := c.dispatch(ctx, fullURL)
		if err != nil {
			attempt++
			if attempt >= c.cfg.MaxAttempts {
				return nil, &APIError{Kind: ErrKindNetwork, Endpoint: endpoint, Attempts: attempt, Err: err}
			}
			c.clock.Sleep(c.cfg.BaseDelay * time.Duration(attempt))
			continue
		}

		c.updateRateLimit(resp)

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				attempt++
				if attempt >= c.cfg.MaxAttempts {
					return nil, &APIError{Kind: ErrKindNetwork, Endpoint: endpoint, Attempts: attempt, Err: err}
				}
				c.clock.Sleep(c.cfg.BaseDelay * time.Duration(attempt))
				continue
			}

			var items []json.RawMessage
			if err := json.Unmarshal(body, &items); err != nil {
				attempt++
				if attempt >= c.cfg.MaxAttempts {
					return nil, &APIError{Kind: ErrKindMalformed, Endpoint: endpoint, StatusCode: resp.StatusCode, Attempts: attempt, Err: err}
				}
				c.clock.Sleep(c.cfg.BaseDelay * time.Duration(attempt))
				continue
			}

			return &pageResult{items: items, link: resp.Header.Get("Link")}, nil
		}

		kind := c.classifyStatus(resp.StatusCode)
		drainBody(resp)

		switch kind {
		case ErrKindRateLimited:
			// Quota exhaustion is handled by waiting for the reset, not by
			// consuming a retry attempt. waitForQuota blocks on the next pass.
			// A 403 whose reset instant is not in the future cannot be waited
			// out, so it surfaces as a permission failure instead of spinning.
			if c.RateLimit().ResetAt.After(c.clock.Now()) {
				continue
			}
			return nil, &APIError{Kind: ErrKindForbidden, Endpoint: endpoint, StatusCode: resp.StatusCode, Attempts: attempt + 1}
		case ErrKindServer:
			attempt++
			if attempt >= c.cfg.MaxAttempts {
				return nil, &APIError{Kind: kind, Endpoint: endpoint, StatusCode: resp.StatusCode, Attempts: attempt,
					Err: fmt.Errorf("retries exhausted")}
			}
			c.clock.Sleep(c.cfg.BaseDelay * time.Duration(attempt))
			continue
		default:
			return nil, &APIError{Kind: kind, Endpoint: endpoint, StatusCode: resp.StatusCode, Attempts: attempt + 1}
		}
	}
}

// dispatch sends a single request with the authorization header attached.
func (c *Client) dispatch(ctx context.Context, fullURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	c.requests.Add(1)
	return c.httpClient.Do(req)
}

// classifyStatus maps a non-2xx status to an error kind. A 403 counts as
// rate-limited only when the quota headers report zero remaining calls.
func (c *Client) classifyStatus(status int) ErrKind {
	switch {
	case status == http.StatusUnauthorized:
		return ErrKindAuth
	case status == http.StatusForbidden:
		if c.RateLimit().Remaining == 0 {
			return ErrKindRateLimited
		}
		return ErrKindForbidden
	case status == http.StatusNotFound:
		return ErrKindNotFound
	case status == http.StatusUnprocessableEntity:
		return ErrKindValidation
	case status >= 500:
		return ErrKindServer
	default:
		return ErrKindValidation
	}
}

// drainBody discards and closes a response body so the connection can be reused.
func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
