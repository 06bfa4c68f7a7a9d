package superfluidnet

import (
	"context"
	"time"

	"CreditPull/internal/domain/models"
	"CreditPull/internal/service/graphql"
)

const currentStreamQuery = `
query CreditPullCurrentStream($sender: String, $receiver: String, $token: String) {
    streams(
        where: {
            sender: $sender,
            receiver: $receiver,
            token: $token
        }
        first: 1
        orderBy: updatedAtTimestamp
        orderDirection: desc
        currentFlowRate_gt: 0
    ) {
        id
        currentFlowRate
        createdAtTimestamp
        updatedAtTimestamp
    }
}
`

// Client looks up active money streams on the streaming-payments subgraph.
type Client struct {
	subgraph *graphql.Client
}

// New creates a stream-network client.
func New(subgraphEndpointURL string, timeout time.Duration) *Client {
	return &Client{subgraph: graphql.New(subgraphEndpointURL, timeout)}
}

type streamsResult struct {
	Streams []models.Stream `json:"streams"`
}

// GetCurrentStream returns the most recently updated active stream between
// sender and receiver for the token. Absence of a stream is a not-found
// condition, not an upstream failure.
func (c *Client) GetCurrentStream(ctx context.Context, senderAddress, receiverAddress, tokenAddress string) (*models.Stream, error) {
	var result streamsResult
	err := c.subgraph.Query(ctx, currentStreamQuery, map[string]any{
		"sender":   senderAddress,
		"receiver": receiverAddress,
		"token":    tokenAddress,
	}, &result)
	if err != nil {
		return nil, err
	}
	if len(result.Streams) == 0 {
		return nil, models.NewNotFoundError(
			"stream not found for sender, receiver and token: (%s, %s, %s)",
			senderAddress, receiverAddress, tokenAddress)
	}
	return &result.Streams[0], nil
}
