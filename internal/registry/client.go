// Package registry talks to the persistent-identifier registry. DOI
// registration is a best-effort step: a failure here never invalidates a
// publication already committed to the ledger.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an HTTP client for the identifier registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type registerRequest struct {
	PaperID string `json:"paper_id"`
	Author  string `json:"author"`
	Title   string `json:"title"`
}

type registerResponse struct {
	DOI string `json:"doi"`
}

// NewClient creates a registry client.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("registry base URL is required")
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// RegisterDOI registers a persistent identifier for a ledger submission and
// returns it.
func (c *Client) RegisterDOI(ctx context.Context, submissionID, author, title string) (string, error) {
	body, err := json.Marshal(registerRequest{
		PaperID: submissionID,
		Author:  author,
		Title:   title,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/dois", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("registry error (%d): %s", httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var resp registerResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.DOI == "" {
		return "", fmt.Errorf("no DOI in registry response")
	}
	return resp.DOI, nil
}
