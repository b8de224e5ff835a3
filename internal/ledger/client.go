// Package ledger talks to the append-only publication ledger. The ledger is
// externally owned; this client performs one call per pipeline step and
// never caches its state.
package ledger

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

// Client is an HTTP client for the publication ledger.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type submitPaperRequest struct {
	ContentRef string `json:"content_ref"`
	Title      string `json:"title"`
	Signature  string `json:"signature"`
	Author     string `json:"author"`
}

type submitPaperResponse struct {
	PaperID string `json:"paper_id"`
}

type submitReviewRequest struct {
	PaperID   string `json:"paper_id"`
	ReviewRef string `json:"review_ref"`
	Rating    int    `json:"rating"`
	Reviewer  string `json:"reviewer"`
}

type submitReviewResponse struct {
	ReviewID string `json:"review_id"`
}

type ledgerError struct {
	Error string `json:"error"`
}

// NewClient creates a ledger client.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ledger base URL is required")
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

// SubmitPaper records (contentRef, title, signature) from the author on the
// ledger and returns the assigned submission ID.
func (c *Client) SubmitPaper(ctx context.Context, contentRef, title, signature, author string) (string, error) {
	req := submitPaperRequest{
		ContentRef: contentRef,
		Title:      title,
		Signature:  signature,
		Author:     author,
	}

	var resp submitPaperResponse
	if err := c.post(ctx, "/v1/papers", req, &resp); err != nil {
		return "", fmt.Errorf("ledger submission: %w", err)
	}
	if resp.PaperID == "" {
		return "", fmt.Errorf("ledger submission: no paper ID in response")
	}
	return resp.PaperID, nil
}

// SubmitReview records a review of a published paper and returns the
// assigned review ID.
func (c *Client) SubmitReview(ctx context.Context, paperID, reviewRef string, rating int, reviewer string) (string, error) {
	req := submitReviewRequest{
		PaperID:   paperID,
		ReviewRef: reviewRef,
		Rating:    rating,
		Reviewer:  reviewer,
	}

	var resp submitReviewResponse
	if err := c.post(ctx, "/v1/reviews", req, &resp); err != nil {
		return "", fmt.Errorf("review submission: %w", err)
	}
	if resp.ReviewID == "" {
		return "", fmt.Errorf("review submission: no review ID in response")
	}
	return resp.ReviewID, nil
}

// post makes a JSON POST to the ledger and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusCreated {
		var apiErr ledgerError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("ledger error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("ledger error (%d): %s", httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
