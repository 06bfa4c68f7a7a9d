package allowlistapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	xhttp "CreditPull/pkg/http"
)

// Client checks borrower membership against the allowlist service.
type Client struct {
	endpoint string
	http     *xhttp.Client
}

// New creates an allowlist client.
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type statusResponse struct {
	Status string `json:"status"`
}

// IsOnAllowlist reports membership for the wallet. Any HTTP-level failure is
// surfaced to the caller; the allowlist adapter decides what to do with it.
func (c *Client) IsOnAllowlist(ctx context.Context, walletAddress string, testnet bool) (bool, error) {
	network := "mainnet"
	if testnet {
		network = "testnet"
	}
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/user/%s/%s", c.endpoint, network, walletAddress),
	})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("allowlist returned status code %d", resp.StatusCode)
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decode allowlist response: %w", err)
	}
	return body.Status == "found", nil
}
