// Package genai talks to the generative language REST API used for topic
// generation, motivational quotes and document summaries.
package genai

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/remote"
)

// ErrUnavailable is returned for every failure, including a missing API key.
var ErrUnavailable = remote.ErrUnavailable

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds the client settings.
type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Disabled is the Generator used when no API key is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("genai: %w: no API key configured", ErrUnavailable)
}

// Enabled reports whether g can reach a model at all.
func Enabled(g Generator) bool {
	if g == nil {
		return false
	}
	_, disabled := g.(Disabled)
	return !disabled
}

// Client is the REST implementation of Generator.
type Client struct {
	cfg    Config
	http   *http.Client
	caller *remote.Caller
}

// New returns a Client, or Disabled when cfg has no API key.
func New(cfg Config, log logging.Logger) Generator {
	if cfg.APIKey == "" {
		return Disabled{}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		caller: remote.NewCaller(remote.Options{
			Name:              "genai",
			RequestsPerSecond: cfg.RequestsPerSecond,
		}, log),
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt to the model and returns the text of the first
// candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.Model), url.QueryEscape(c.cfg.APIKey))

	body, err := c.caller.Do(ctx, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		return remote.ReadBody(resp)
	})
	if err != nil {
		return "", err
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("genai: %w: decode response: %w", ErrUnavailable, err)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("genai: %w: empty response", ErrUnavailable)
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("genai: %w: empty response", ErrUnavailable)
	}
	return text, nil
}
