package requestnet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"CreditPull/internal/domain/models"
	xhttp "CreditPull/pkg/http"
	"CreditPull/internal/service/graphql"
	"CreditPull/pkg/util"

	"github.com/shopspring/decimal"
)

// DefaultChunkSize is the fixed page size for cursor-paginated subgraph
// queries. A page shorter than this terminates the pagination.
const DefaultChunkSize = 1000

// invoiceDueDateOffset: the invoice API does not expose a due date, so it is
// derived from the creation date the same way the scoring pipeline does.
const invoiceDueDateOffset = 30 * 24 * time.Hour

// Client is the translation layer for the payment-network subgraph and the
// invoice lookup API.
type Client struct {
	subgraph      *graphql.Client
	invoiceAPIURL string
	http          *xhttp.Client
	chunkSize     int
}

// New creates a request-network client.
func New(subgraphEndpointURL, invoiceAPIURL string, timeout time.Duration) *Client {
	return &Client{
		subgraph:      graphql.New(subgraphEndpointURL, timeout),
		invoiceAPIURL: invoiceAPIURL,
		http:          xhttp.NewClient(xhttp.WithTimeout(timeout)),
		chunkSize:     DefaultChunkSize,
	}
}

type paymentsPage struct {
	Payments []models.PaymentRecord `json:"payments"`
}

// GetPayments fetches all payments matching the optional from/to filter,
// paging by id cursor. Pages are strictly sequential: each cursor depends on
// the previous page's last record.
func (c *Client) GetPayments(ctx context.Context, fromAddress, toAddress string) ([]models.PaymentRecord, error) {
	var whereClause strings.Builder
	if fromAddress != "" {
		fmt.Fprintf(&whereClause, "from: %q,\n", fromAddress)
	}
	if toAddress != "" {
		fmt.Fprintf(&whereClause, "to: %q,\n", toAddress)
	}

	payments := []models.PaymentRecord{}
	lastChunkSize := c.chunkSize
	lastID := ""
	for lastChunkSize == c.chunkSize {
		query := fmt.Sprintf(`
			query CreditPullPayments {
				payments(
					first: %d,
					where: {
						%s
						id_gt: %q
					}
					orderBy: id,
					orderDirection: asc
				) {
					id
					contractAddress
					tokenAddress
					to
					from
					timestamp
					txHash
					amount
					currency
					amountInCrypto
				}
			}`, c.chunkSize, whereClause.String(), lastID)

		var page paymentsPage
		if err := c.subgraph.Query(ctx, query, nil, &page); err != nil {
			return nil, err
		}
		payments = append(payments, page.Payments...)
		lastChunkSize = len(page.Payments)
		if len(payments) > 0 {
			lastID = payments[len(payments)-1].ID
		}
	}
	return payments, nil
}

type invoiceResponse struct {
	Owner          string `json:"owner"`
	Payer          string `json:"payer"`
	Payee          string `json:"payee"`
	ExpectedAmount string `json:"expectedAmount"`
	CreationDate   int64  `json:"creationDate"`
	CurrencyInfo   struct {
		Symbol string `json:"symbol"`
	} `json:"currencyInfo"`
}

// GetInvoice resolves a receivable id into an invoice. A 404 from the
// invoice API means the receivable does not exist.
func (c *Client) GetInvoice(ctx context.Context, receivableID string) (*models.Invoice, error) {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.invoiceAPIURL,
		QueryParams: map[string][]string{"id": {receivableID}},
	})
	if err != nil {
		return nil, models.NewUpstreamError(err, "invoice lookup failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.NewNotFoundError("invoice %s not found", receivableID)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, models.NewUpstreamError(nil, "invoice API returned status code %d", resp.StatusCode)
	}

	var info invoiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, models.NewUpstreamError(err, "unexpected invoice response shape")
	}

	for _, addr := range []string{info.Owner, info.Payer, info.Payee} {
		if !util.IsHexAddress(addr) {
			return nil, models.NewUpstreamError(nil, "invoice carries an invalid address: %s", addr)
		}
	}
	amount, err := decimal.NewFromString(info.ExpectedAmount)
	if err != nil {
		return nil, models.NewUpstreamError(err, "invoice carries an invalid amount: %s", info.ExpectedAmount)
	}

	creation := time.Unix(info.CreationDate, 0).UTC()
	return &models.Invoice{
		TokenOwner:   strings.ToLower(info.Owner),
		Currency:     info.CurrencyInfo.Symbol,
		Amount:       amount,
		Payer:        strings.ToLower(info.Payer),
		Payee:        strings.ToLower(info.Payee),
		CreationDate: creation,
		DueDate:      creation.Add(invoiceDueDateOffset),
	}, nil
}
