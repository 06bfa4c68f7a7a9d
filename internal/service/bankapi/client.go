package bankapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"CreditPull/internal/domain/models"
	xhttp "CreditPull/pkg/http"
	applogger "CreditPull/pkg/logger"

	"github.com/shopspring/decimal"
)

// The banking API needs a grace period after token creation before the
// transactions product is queryable; it reports PRODUCT_NOT_READY until
// then. That condition is retried, nothing else is.
const (
	productNotReadyCode  = "PRODUCT_NOT_READY"
	maxAttempts          = 3
	retryBackoff         = 2 * time.Second
	transactionsPageSize = 500
)

// Client speaks the bank-transactions aggregator API.
type Client struct {
	baseURL  string
	clientID string
	secret   string
	http     *xhttp.Client
	logger   *applogger.Logger
}

// New creates a banking client.
func New(baseURL, clientID, secret string, timeout time.Duration, l *applogger.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		clientID: clientID,
		secret:   secret,
		http:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:   l,
	}
}

type apiError struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func (c *Client) post(ctx context.Context, path string, body map[string]any, out any) error {
	body["client_id"] = c.clientID
	body["secret"] = c.secret

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + path,
		Body:   body,
	})
	if err != nil {
		return models.NewUpstreamError(err, "bank API request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.NewUpstreamError(err, "read bank API response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.ErrorCode != "" {
			return &bankError{code: apiErr.ErrorCode, message: apiErr.ErrorMessage}
		}
		return models.NewUpstreamError(nil, "bank API returned status code %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return models.NewUpstreamError(err, "unexpected bank API response shape")
	}
	return nil
}

type bankError struct {
	code    string
	message string
}

func (e *bankError) Error() string {
	return fmt.Sprintf("bank API error %s: %s", e.code, e.message)
}

// ExchangeAccessToken trades a public token for an access token.
func (c *Client) ExchangeAccessToken(ctx context.Context, publicToken string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.post(ctx, "/item/public_token/exchange", map[string]any{
		"public_token": publicToken,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

type bankTransaction struct {
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
}

type transactionsResponse struct {
	Transactions      []bankTransaction `json:"transactions"`
	TotalTransactions int               `json:"total_transactions"`
}

// GetTransactions fetches all account transactions in the window, paging by
// offset until the reported total is reached.
func (c *Client) GetTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]models.BankTransaction, error) {
	var all []models.BankTransaction
	offset := 0
	for {
		var page transactionsResponse
		err := c.postWithRetry(ctx, "/transactions/get", map[string]any{
			"access_token": accessToken,
			"start_date":   startDate.Format("2006-01-02"),
			"end_date":     endDate.Format("2006-01-02"),
			"options":      map[string]any{"count": transactionsPageSize, "offset": offset},
		}, &page)
		if err != nil {
			return nil, err
		}
		for _, tx := range page.Transactions {
			date, err := time.Parse("2006-01-02", tx.Date)
			if err != nil {
				return nil, models.NewUpstreamError(err, "bank transaction carries invalid date %s", tx.Date)
			}
			all = append(all, models.BankTransaction{
				Date:       date,
				Amount:     decimal.NewFromFloat(tx.Amount),
				CategoryID: tx.CategoryID,
				Name:       tx.Name,
			})
		}
		offset = len(all)
		if len(page.Transactions) == 0 || len(all) >= page.TotalTransactions {
			return all, nil
		}
	}
}

// postWithRetry retries PRODUCT_NOT_READY up to maxAttempts.
func (c *Client) postWithRetry(ctx context.Context, path string, body map[string]any, out any) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = c.post(ctx, path, body, out)
		if lastErr == nil {
			return nil
		}
		bankErr, ok := lastErr.(*bankError)
		if !ok || bankErr.code != productNotReadyCode {
			return lastErr
		}
		if c.logger != nil {
			c.logger.Warn("bank product not ready, retrying",
				applogger.Int("attempt", attempt))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
	return models.NewUpstreamError(lastErr, "bank product not ready after %d attempts", maxAttempts)
}

type balanceResponse struct {
	Accounts []struct {
		Balances struct {
			Available float64 `json:"available"`
		} `json:"balances"`
	} `json:"accounts"`
}

// GetAvailableBalance returns the available balance of the first account on
// the item.
func (c *Client) GetAvailableBalance(ctx context.Context, accessToken string) (decimal.Decimal, error) {
	var out balanceResponse
	err := c.post(ctx, "/accounts/balance/get", map[string]any{
		"access_token": accessToken,
	}, &out)
	if err != nil {
		return decimal.Zero, err
	}
	if len(out.Accounts) == 0 {
		return decimal.Zero, models.NewUpstreamError(nil, "bank API returned no accounts")
	}
	return decimal.NewFromFloat(out.Accounts[0].Balances.Available), nil
}
