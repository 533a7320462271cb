// Package websearch queries the Custom Search JSON API for learning
// resources that the local dataset does not cover.
package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/remote"
)

var ErrUnavailable = remote.ErrUnavailable

// maxResults is the largest page the API serves.
const maxResults = 10

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Searcher finds web pages for a query.
type Searcher interface {
	Search(ctx context.Context, query string, n int) ([]Result, error)
}

// Config holds the client settings.
type Config struct {
	APIKey   string
	EngineID string
	BaseURL  string
	Timeout  time.Duration
}

// Disabled is the Searcher used without credentials.
type Disabled struct{}

func (Disabled) Search(context.Context, string, int) ([]Result, error) {
	return nil, fmt.Errorf("websearch: %w: not configured", ErrUnavailable)
}

// Client is the REST implementation of Searcher.
type Client struct {
	cfg    Config
	http   *http.Client
	caller *remote.Caller
}

// New returns a Client, or Disabled when the key or engine id is missing.
func New(cfg Config, log logging.Logger) Searcher {
	if cfg.APIKey == "" || cfg.EngineID == "" {
		return Disabled{}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		caller: remote.NewCaller(remote.Options{Name: "websearch", RequestsPerSecond: 5}, log),
	}
}

// Search returns up to n results for query.
func (c *Client) Search(ctx context.Context, query string, n int) ([]Result, error) {
	if n <= 0 || n > maxResults {
		n = maxResults
	}

	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("cx", c.cfg.EngineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(n))
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/customsearch/v1?" + params.Encode()

	body, err := c.caller.Do(ctx, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		return remote.ReadBody(resp)
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Items []Result `json:"items"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("websearch: %w: decode response: %w", ErrUnavailable, err)
	}
	if len(out.Items) > n {
		out.Items = out.Items[:n]
	}
	return out.Items, nil
}
