// Package remote is a minimal REST client to an external corpus
// service. External article providers plug in behind the same
// CorpusStore interface as local reference material.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"plagcheck/internal/domain"
)

// Client fetches candidate texts from, and submits new entries to, a
// corpus service speaking a small JSON contract:
//
//	GET  {url}/candidates?hint=...  -> {"entries": [CorpusEntry]}
//	POST {url}/entries              -> {"added": n}
type Client struct {
	url    string
	apiKey string
	client *http.Client
}

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

// FetchCandidates retrieves the corpus entries relevant to the query
// hint. Safe to call once per sentence; the service side owns ranking
// depth and has no visible side effects.
func (c *Client) FetchCandidates(ctx context.Context, queryHint string) ([]domain.CorpusEntry, error) {
	endpoint := fmt.Sprintf("%s/candidates?hint=%s", c.url, url.QueryEscape(queryHint))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("corpus GET %s failed: %s", endpoint, resp.Status)
	}
	var out struct {
		Entries []domain.CorpusEntry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// AddEntries submits new entries to the corpus service and returns the
// count it reports as added. Validation and deduplication are the
// service's responsibility.
func (c *Client) AddEntries(ctx context.Context, entries []domain.CorpusEntry) (int, error) {
	body := map[string]any{"entries": entries}
	data, _ := json.Marshal(body)
	endpoint := fmt.Sprintf("%s/entries", c.url)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("corpus POST %s failed: %s", endpoint, resp.Status)
	}
	var out struct {
		Added int `json:"added"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.Added, nil
}
