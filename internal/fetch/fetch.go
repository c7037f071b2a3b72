// Package fetch retrieves and parses RSS/Atom feeds, and reads back the feed
// files a previous run persisted.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	"feedloom/internal/feed"
	"feedloom/internal/services"
)

const defaultTimeout = 10 * time.Second

// userAgents is a small pool of current browser identifiers; one is picked per
// request because some feed hosts reject obvious bot agents.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
}

// Client fetches feeds over HTTP with a fixed per-request timeout.
type Client struct {
	httpClient *http.Client
	parser     *gofeed.Parser
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a fetch client. timeout <= 0 selects the default 10s.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		parser:     gofeed.NewParser(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves and parses one feed URL. Non-200 responses, transport
// failures and unparseable bodies are all fetch errors; the caller skips the
// URL and continues.
func (c *Client) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "fetch", "new request", url, err)
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "fetch", "get", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrFetch, "fetch", "get",
			fmt.Sprintf("%s: http %d", url, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "fetch", "read body", url, err)
	}

	parsed, err := c.parser.ParseString(string(body))
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "fetch", "parse feed", url, err)
	}
	return parsed, nil
}

// ReadStored parses a previously written section feed file into entries.
// A missing file is an empty list, not an error.
func ReadStored(path string) ([]feed.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open stored feed: %w", err)
	}
	defer file.Close()

	parsed, err := gofeed.NewParser().Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse stored feed %s: %w", path, err)
	}

	entries := make([]feed.Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		entries = append(entries, feed.Normalize(item))
	}
	return entries, nil
}
