// Package pairedparty holds the signal record and aggregation shared by the
// invoice-style adapters. Both resolve a receivable to its payer and payee,
// union the payment histories of the two parties, and report the same triple
// of payer / payee / pair statistics.
package pairedparty

import (
	"context"
	"strings"
	"time"

	"CreditPull/internal/adapters/wallet"
	"CreditPull/internal/domain/models"
	"CreditPull/internal/service/stats"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// allowedPayerAddresses is the static allowlist of payers considered
// creditworthy regardless of history. Lowercase.
var allowedPayerAddresses = map[string]struct{}{
	"0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f": {},
}

// Signals is the common record of the paired-party adapters.
type Signals struct {
	PayerTenure       int   `json:"payer_tenure"`
	PayerRecent       int   `json:"payer_recent"`
	PayerCount        int   `json:"payer_count"`
	PayerTotalAmount  int64 `json:"payer_total_amount"`
	PayerUniquePayees int   `json:"payer_unique_payees"`

	PayeeTenure       int   `json:"payee_tenure"`
	PayeeRecent       int   `json:"payee_recent"`
	PayeeCount        int   `json:"payee_count"`
	PayeeTotalAmount  int64 `json:"payee_total_amount"`
	PayeeUniquePayers int   `json:"payee_unique_payers"`

	MutualCount       int   `json:"mutual_count"`
	MutualTotalAmount int64 `json:"mutual_total_amount"`

	PayeeMatchBorrower bool            `json:"payee_match_borrower"`
	PayerMatchPayee    bool            `json:"payer_match_payee"`
	BorrowerOwnInvoice bool            `json:"borrower_own_invoice"`
	DaysUntilDueDate   int             `json:"days_until_due_date"`
	InvoiceAmount      decimal.Decimal `json:"invoice_amount"`
	PayerOnAllowlist   bool            `json:"payer_on_allowlist"`
}

// SignalValues flattens the record for registry merging.
func (s Signals) SignalValues() map[string]any {
	return map[string]any{
		"payer_tenure":         s.PayerTenure,
		"payer_recent":         s.PayerRecent,
		"payer_count":          s.PayerCount,
		"payer_total_amount":   s.PayerTotalAmount,
		"payer_unique_payees":  s.PayerUniquePayees,
		"payee_tenure":         s.PayeeTenure,
		"payee_recent":         s.PayeeRecent,
		"payee_count":          s.PayeeCount,
		"payee_total_amount":   s.PayeeTotalAmount,
		"payee_unique_payers":  s.PayeeUniquePayers,
		"mutual_count":         s.MutualCount,
		"mutual_total_amount":  s.MutualTotalAmount,
		"payee_match_borrower": s.PayeeMatchBorrower,
		"payer_match_payee":    s.PayerMatchPayee,
		"borrower_own_invoice": s.BorrowerOwnInvoice,
		"days_until_due_date":  s.DaysUntilDueDate,
		"invoice_amount":       s.InvoiceAmount,
		"payer_on_allowlist":   s.PayerOnAllowlist,
	}
}

// SignalNames is the descriptor ordering of the common signals.
func SignalNames() []string {
	return []string{
		"payer_tenure",
		"payer_recent",
		"payer_count",
		"payer_total_amount",
		"payer_unique_payees",
		"payee_tenure",
		"payee_recent",
		"payee_count",
		"payee_total_amount",
		"payee_unique_payers",
		"mutual_count",
		"mutual_total_amount",
		"payee_match_borrower",
		"payer_match_payee",
		"borrower_own_invoice",
		"days_until_due_date",
		"invoice_amount",
		"payer_on_allowlist",
	}
}

// Receivable carries the invoice fields both adapter variants resolve before
// aggregating payment history.
type Receivable struct {
	TokenOwner string
	Payer      string
	Payee      string
	Amount     decimal.Decimal
	DueDate    time.Time
}

// Build assembles the common record from the unioned payment history of the
// receivable's two parties. Wallet tenure for payer and payee is resolved
// through the wallet provider concurrently; any provider error fails the
// build.
func Build(
	ctx context.Context,
	receivable Receivable,
	payments []models.PaymentRecord,
	chain models.Chain,
	borrowerWalletAddress string,
	wallets wallet.Provider,
	now time.Time,
) (Signals, error) {
	enriched := stats.Enrich(payments, chain)
	payerStats := stats.Summarize(stats.FilterByParty(enriched, receivable.Payer, ""), now)
	payeeStats := stats.Summarize(stats.FilterByParty(enriched, "", receivable.Payee), now)
	pairStats := stats.Summarize(stats.FilterByParty(enriched, receivable.Payer, receivable.Payee), now)

	var payerWallet, payeeWallet wallet.Signals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payerWallet, err = wallets.FetchWalletSignals(gctx, receivable.Payer)
		return err
	})
	g.Go(func() error {
		var err error
		payeeWallet, err = wallets.FetchWalletSignals(gctx, receivable.Payee)
		return err
	})
	if err := g.Wait(); err != nil {
		return Signals{}, err
	}

	borrower := strings.ToLower(borrowerWalletAddress)
	_, payerAllowed := allowedPayerAddresses[strings.ToLower(receivable.Payer)]

	return Signals{
		PayerTenure:       payerWallet.WalletTenureInDays,
		PayerRecent:       payerStats.LastTxnAgeDays,
		PayerCount:        payerStats.TotalTxns,
		PayerTotalAmount:  payerStats.TotalAmount,
		PayerUniquePayees: payerStats.UniquePayees,

		PayeeTenure:       payeeWallet.WalletTenureInDays,
		PayeeRecent:       payeeStats.LastTxnAgeDays,
		PayeeCount:        payeeStats.TotalTxns,
		PayeeTotalAmount:  payeeStats.TotalAmount,
		PayeeUniquePayers: payeeStats.UniquePayers,

		MutualCount:       pairStats.TotalTxns,
		MutualTotalAmount: pairStats.TotalAmount,

		PayeeMatchBorrower: strings.ToLower(receivable.Payee) == borrower,
		PayerMatchPayee:    strings.EqualFold(receivable.Payer, receivable.Payee),
		BorrowerOwnInvoice: strings.ToLower(receivable.TokenOwner) == borrower,
		DaysUntilDueDate:   stats.DaysBetween(now, receivable.DueDate),
		InvoiceAmount:      receivable.Amount,
		PayerOnAllowlist:   payerAllowed,
	}, nil
}

// MutualPaid reports whether the pair has at least one payment between them.
func (s Signals) MutualPaid() bool {
	return s.MutualCount > 0
}
