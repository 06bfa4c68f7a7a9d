package graphql

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"CreditPull/internal/domain/models"
	svcmetrics "CreditPull/internal/service/metrics"
	xhttp "CreditPull/pkg/http"
)

// Client is a minimal GraphQL-over-HTTP client for subgraph endpoints.
type Client struct {
	endpoint string
	host     string
	http     *xhttp.Client
}

// New creates a client for one subgraph endpoint.
func New(endpoint string, timeout time.Duration) *Client {
	svcmetrics.Register()

	host := endpoint
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		host = u.Host
	}

	return &Client{
		endpoint: endpoint,
		host:     host,
		http:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type gqlError struct {
	Message string `json:"message"`
}

// Query posts a GraphQL query and decodes the data payload into out.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	start := time.Now()
	var resp gqlResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.endpoint,
		Body:   gqlRequest{Query: query, Variables: variables},
	}, &resp)
	svcmetrics.Observe(c.host, time.Since(start).Seconds(), err != nil)
	if err != nil {
		return models.NewUpstreamError(err, "subgraph query failed")
	}
	if len(resp.Errors) > 0 {
		return models.NewUpstreamError(nil, "subgraph returned error: %s", resp.Errors[0].Message)
	}
	if resp.Data == nil {
		return models.NewUpstreamError(nil, "no data returned from query")
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return models.NewUpstreamError(err, "unexpected subgraph response shape")
	}
	return nil
}
