// Package reputation reads participant reputation scores. Reads are cached
// with a short TTL; a failed read surfaces UnavailableError rather than a
// fabricated score.
package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// UnavailableError distinguishes "reputation could not be read" from any
// real score. Callers must never substitute a default.
type UnavailableError struct {
	Identity string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("reputation unavailable for %s: %v", e.Identity, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

type reputationResponse struct {
	Score *int `json:"score"`
}

// Client reads reputation scores over HTTP with TTL caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
}

// NewClient creates a reputation client.
func NewClient(baseURL string, timeout, cacheTTL time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("reputation base URL is required")
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: gocache.New(cacheTTL, 10*time.Minute),
	}, nil
}

// Score returns the reputation score for an identity. Cached values are
// served without a network round trip.
func (c *Client) Score(ctx context.Context, identity string) (int, error) {
	if v, found := c.cache.Get(identity); found {
		return v.(int), nil
	}

	score, err := c.fetch(ctx, identity)
	if err != nil {
		return 0, &UnavailableError{Identity: identity, Err: err}
	}

	c.cache.SetDefault(identity, score)
	return score, nil
}

func (c *Client) fetch(ctx context.Context, identity string) (int, error) {
	url := fmt.Sprintf("%s/v1/reputation/%s", c.baseURL, identity)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("reputation service error (%d)", httpResp.StatusCode)
	}

	var resp reputationResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return 0, fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.Score == nil {
		return 0, fmt.Errorf("no score in response")
	}
	return *resp.Score, nil
}
