package repository

import (
	"context"
	"time"

	"CreditPull/internal/domain/models"

	"github.com/shopspring/decimal"
)

// TransactionSource fetches the full transaction history of a wallet from a
// chain explorer.
type TransactionSource interface {
	GetTransactions(ctx context.Context, walletAddress string) ([]models.Transaction, error)
}

// PaymentSource fetches payment records from a payment-graph endpoint.
// Either address may be empty; both set means "between the pair". Pagination
// is internal to the source.
type PaymentSource interface {
	GetPayments(ctx context.Context, fromAddress, toAddress string) ([]models.PaymentRecord, error)
}

// InvoiceSource resolves a receivable id to an invoice.
type InvoiceSource interface {
	GetInvoice(ctx context.Context, receivableID string) (*models.Invoice, error)
}

// ClaimSource resolves claims and claim payments on the claim network.
type ClaimSource interface {
	GetClaim(ctx context.Context, claimID string) (*models.Claim, error)
	GetClaimPayments(ctx context.Context, creditorAddress, debtorAddress string) ([]models.PaymentRecord, error)
}

// AllowlistSource checks allowlist membership for a borrower address.
type AllowlistSource interface {
	IsOnAllowlist(ctx context.Context, walletAddress string, testnet bool) (bool, error)
}

// PoolSource reads lending pool configuration from the chain.
type PoolSource interface {
	GetPoolSummary(ctx context.Context, pool models.PoolSetting) (*models.PoolSummary, error)
}

// StreamSource looks up the current money stream between two parties for a
// token.
type StreamSource interface {
	GetCurrentStream(ctx context.Context, senderAddress, receiverAddress, tokenAddress string) (*models.Stream, error)
}

// BankSource fetches bank account transactions and balances.
type BankSource interface {
	ExchangeAccessToken(ctx context.Context, publicToken string) (string, error)
	GetTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]models.BankTransaction, error)
	GetAvailableBalance(ctx context.Context, accessToken string) (decimal.Decimal, error)
}

// Metrics records operational metrics for signal fetches.
type Metrics interface {
	RecordFetch(adapterName string, duration time.Duration)
	RecordFetchError(adapterName string)
	RecordSignalsServed(count int)
}

// SignalPublisher emits fetch events for downstream consumers.
type SignalPublisher interface {
	PublishFetchEvent(ctx context.Context, event models.FetchEvent) error
	Close() error
}
