// Package incentive credits authors and reviewers through the external
// token ledger. Payouts are best-effort: failures are reported but never
// block a publication.
package incentive

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

// Client is an HTTP client for the incentive store.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type rewardRequest struct {
	Recipient string `json:"recipient"`
	PaperID   string `json:"paper_id,omitempty"`
	ReviewID  string `json:"review_id,omitempty"`
	Kind      string `json:"kind"` // "submission" or "review"
}

type rewardResponse struct {
	TxRef string `json:"tx_ref"`
}

// NewClient creates an incentive client.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("incentive base URL is required")
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

// RewardAuthor credits an author for an accepted submission and returns the
// transfer reference.
func (c *Client) RewardAuthor(ctx context.Context, author, submissionID string) (string, error) {
	return c.reward(ctx, rewardRequest{
		Recipient: author,
		PaperID:   submissionID,
		Kind:      "submission",
	})
}

// RewardReviewer credits a reviewer for a recorded review.
func (c *Client) RewardReviewer(ctx context.Context, reviewer, reviewID string) (string, error) {
	return c.reward(ctx, rewardRequest{
		Recipient: reviewer,
		ReviewID:  reviewID,
		Kind:      "review",
	})
}

func (c *Client) reward(ctx context.Context, req rewardRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/rewards", bytes.NewReader(body))
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
		return "", fmt.Errorf("incentive error (%d): %s", httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var resp rewardResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return resp.TxRef, nil
}
