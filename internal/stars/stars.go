// Package stars fetches GitHub stargazer counts for framework repositories.
package stars

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAPI is the public GitHub REST endpoint.
	DefaultAPI = "https://api.github.com"
	// DefaultTTL is how long a successful count is reused.
	DefaultTTL = 6 * time.Hour
	// Placeholder is shown when a count is unavailable.
	Placeholder = "…"

	maxConcurrent = 4
)

// Client fetches and caches star counts.
type Client struct {
	http     *http.Client
	baseURL  string
	cacheDir string
	ttl      time.Duration
	now      func() time.Time

	mu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithCacheDir enables the on-disk cache in dir.
func WithCacheDir(dir string) Option {
	return func(c *Client) { c.cacheDir = dir }
}

// WithTTL overrides the cache lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient returns a client with a 5 second request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 5 * time.Second},
		baseURL: DefaultAPI,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type repoResponse struct {
	StargazersCount int `json:"stargazers_count"`
}

// Fetch returns the star count for an "owner/name" repository, using the
// cache when a fresh entry exists. Only successful fetches are cached.
func (c *Client) Fetch(ctx context.Context, repo string) (int, error) {
	if n, ok := c.cached(repo); ok {
		return n, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/repos/"+repo, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("github api: %s", resp.Status)
	}

	var body repoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode %s: %w", repo, err)
	}

	c.store(repo, body.StargazersCount)
	return body.StargazersCount, nil
}

// Result is one repository's outcome from FetchAll.
type Result struct {
	Repo  string `json:"repo"`
	Stars int    `json:"stars"`
	Err   error  `json:"-"`
}

// Display renders the count or the placeholder.
func (r Result) Display() string { return Display(r.Stars, r.Err) }

// FetchAll fetches several repositories concurrently. A failure for one repo
// is recorded in its Result and does not stop the others.
func (c *Client) FetchAll(ctx context.Context, repos []string) []Result {
	results := make([]Result, len(repos))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, repo := range repos {
		g.Go(func() error {
			n, err := c.Fetch(ctx, repo)
			if err != nil {
				slog.Debug("star fetch failed", "repo", repo, "err", err)
			}
			results[i] = Result{Repo: repo, Stars: n, Err: err}
			return nil
		})
	}
	g.Wait()
	return results
}

// Display formats a count like "214.3k", or the placeholder on error.
func Display(n int, err error) string {
	if err != nil {
		return Placeholder
	}
	if n < 1000 {
		return humanize.Comma(int64(n))
	}
	return strings.ReplaceAll(humanize.SIWithDigits(float64(n), 1, ""), " ", "")
}
