package etherscan

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"CreditPull/internal/domain/models"
	svcmetrics "CreditPull/internal/service/metrics"
	xhttp "CreditPull/pkg/http"
	applogger "CreditPull/pkg/logger"
)

// Client fetches wallet transaction histories from an Etherscan-compatible
// explorer API. Polygonscan speaks the same protocol, so one client serves
// both chains.
type Client struct {
	baseURL string
	host    string
	apiKey  string
	http    *xhttp.Client
	logger  *applogger.Logger
}

// New creates an explorer client.
func New(baseURL, apiKey string, timeout time.Duration, l *applogger.Logger) *Client {
	svcmetrics.Register()

	host := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = u.Host
	}

	return &Client{
		baseURL: baseURL,
		host:    host,
		apiKey:  apiKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  l,
	}
}

// txListResponse is the explorer envelope. Result is raw because the API
// returns a string error message instead of a list on failure.
type txListResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

const noTransactionsFound = "No transactions found"

// GetTransactions returns every transaction touching the wallet, oldest
// first. A wallet with no history yields an empty list; any other explorer
// failure is surfaced, not masked.
func (c *Client) GetTransactions(ctx context.Context, walletAddress string) ([]models.Transaction, error) {
	start := time.Now()
	var resp txListResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/api",
		QueryParams: map[string][]string{
			"module":     {"account"},
			"action":     {"txlist"},
			"address":    {walletAddress},
			"startblock": {"0"},
			"endblock":   {"99999999"},
			"sort":       {"asc"},
			"apikey":     {c.apiKey},
		},
	}, &resp)
	svcmetrics.Observe(c.host, time.Since(start).Seconds(), err != nil)
	if err != nil {
		return nil, models.NewUpstreamError(err, "explorer txlist request failed")
	}

	if resp.Status != "1" {
		if resp.Message == noTransactionsFound {
			return []models.Transaction{}, nil
		}
		if c.logger != nil {
			c.logger.Warn("explorer returned error status",
				applogger.String("status", resp.Status),
				applogger.String("message", resp.Message))
		}
		return nil, models.NewUpstreamError(nil, "explorer returned status %s: %s", resp.Status, resp.Message)
	}

	var txns []models.Transaction
	if err := json.Unmarshal(resp.Result, &txns); err != nil {
		return nil, models.NewUpstreamError(err, "unexpected explorer response shape")
	}
	return txns, nil
}
