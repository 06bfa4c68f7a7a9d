package bullanet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"CreditPull/internal/domain/models"
	"CreditPull/internal/service/graphql"
	"CreditPull/pkg/util"

	"github.com/shopspring/decimal"
)

// Fixed page size for cursor-paginated claim payment queries.
const defaultChunkSize = 1000

// Client is the translation layer for the claim-network subgraph.
type Client struct {
	subgraph  *graphql.Client
	chunkSize int
}

// New creates a claim-network client.
func New(subgraphEndpointURL string, timeout time.Duration) *Client {
	return &Client{
		subgraph:  graphql.New(subgraphEndpointURL, timeout),
		chunkSize: defaultChunkSize,
	}
}

type claimPaymentEvent struct {
	ID     string `json:"id"`
	Debtor string `json:"debtor"`
	Claim  struct {
		ID       string `json:"id"`
		Creditor struct {
			ID string `json:"id"`
		} `json:"creditor"`
		Token struct {
			Symbol string `json:"symbol"`
		} `json:"token"`
	} `json:"claim"`
	PaymentAmount   string `json:"paymentAmount"`
	Timestamp       string `json:"timestamp"`
	TransactionHash string `json:"transactionHash"`
}

type claimPaymentsPage struct {
	ClaimPaymentEvents []claimPaymentEvent `json:"claimPaymentEvents"`
}

// GetClaimPayments fetches all claim payments matching the optional
// creditor/debtor filter, normalized into payment records (debtor pays the
// creditor). Pagination follows the id cursor, pages strictly in order.
func (c *Client) GetClaimPayments(ctx context.Context, creditorAddress, debtorAddress string) ([]models.PaymentRecord, error) {
	var whereClause strings.Builder
	if creditorAddress != "" {
		fmt.Fprintf(&whereClause, "claim_: {creditor: %q},\n", creditorAddress)
	}
	if debtorAddress != "" {
		fmt.Fprintf(&whereClause, "debtor: %q,\n", debtorAddress)
	}

	payments := []models.PaymentRecord{}
	lastChunkSize := c.chunkSize
	lastID := ""
	for lastChunkSize == c.chunkSize {
		query := fmt.Sprintf(`
			query CreditPullClaimPayments {
				claimPaymentEvents(
					first: %d,
					where: {
						%s
						id_gt: %q
					}
					orderBy: id,
					orderDirection: asc
				) {
					id
					debtor
					claim {
						id
						creditor {id}
						token {symbol}}
					paymentAmount
					timestamp
					transactionHash
				}
			}`, c.chunkSize, whereClause.String(), lastID)

		var page claimPaymentsPage
		if err := c.subgraph.Query(ctx, query, nil, &page); err != nil {
			return nil, err
		}
		for _, ev := range page.ClaimPaymentEvents {
			payments = append(payments, models.PaymentRecord{
				ID:          ev.ID,
				From:        ev.Debtor,
				To:          ev.Claim.Creditor.ID,
				Amount:      ev.PaymentAmount,
				Timestamp:   ev.Timestamp,
				TxHash:      ev.TransactionHash,
				TokenSymbol: ev.Claim.Token.Symbol,
			})
		}
		lastChunkSize = len(page.ClaimPaymentEvents)
		if len(payments) > 0 {
			lastID = payments[len(payments)-1].ID
		}
	}
	return payments, nil
}

type claimResult struct {
	Claims []struct {
		ID    string `json:"id"`
		Token struct {
			Symbol string `json:"symbol"`
		} `json:"token"`
		Creditor struct {
			ID string `json:"id"`
		} `json:"creditor"`
		Debtor struct {
			ID string `json:"id"`
		} `json:"debtor"`
		Amount  string `json:"amount"`
		Created string `json:"created"`
		DueBy   string `json:"dueBy"`
		Status  string `json:"status"`
	} `json:"claims"`
}

// GetClaim resolves a claim id. An empty result means the claim does not
// exist.
func (c *Client) GetClaim(ctx context.Context, claimID string) (*models.Claim, error) {
	query := fmt.Sprintf(`
		query CreditPullClaim {
			claims(
				where: {id: %q}
			) {
				id
				token { symbol }
				creditor { id }
				debtor { id }
				amount
				created
				dueBy
				status
			}
		}`, claimID)

	var result claimResult
	if err := c.subgraph.Query(ctx, query, nil, &result); err != nil {
		return nil, err
	}
	if len(result.Claims) != 1 {
		return nil, models.NewNotFoundError("claim not found with id %s", claimID)
	}
	claim := result.Claims[0]

	creditor := strings.ToLower(claim.Creditor.ID)
	debtor := strings.ToLower(claim.Debtor.ID)
	if !util.IsHexAddress(creditor) {
		return nil, models.NewUpstreamError(nil, "claim creditor is not a valid address: %s", creditor)
	}
	if !util.IsHexAddress(debtor) {
		return nil, models.NewUpstreamError(nil, "claim debtor is not a valid address: %s", debtor)
	}
	amount, err := decimal.NewFromString(claim.Amount)
	if err != nil {
		return nil, models.NewUpstreamError(err, "claim carries an invalid amount: %s", claim.Amount)
	}

	created := util.ParseTimeDefault(claim.Created, time.Time{})
	dueBy := util.ParseTimeDefault(claim.DueBy, time.Time{})
	return &models.Claim{
		ID:           claim.ID,
		TokenOwner:   creditor,
		TokenSymbol:  claim.Token.Symbol,
		Amount:       amount,
		Status:       claim.Status,
		Creditor:     creditor,
		Debtor:       debtor,
		CreationDate: created.UTC(),
		DueDate:      dueBy.UTC(),
	}, nil
}
