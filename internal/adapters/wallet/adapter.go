package wallet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	"CreditPull/internal/domain/repository"
	"CreditPull/internal/service/stats"
	"CreditPull/pkg/util"

	"github.com/shopspring/decimal"
)

// Income and activity signals use a fixed trailing window.
const incomeWindowDays = 90

// Signals are the wallet-activity signals for one borrower address.
type Signals struct {
	TotalTransactions       int             `json:"total_transactions"`
	TotalSent               int             `json:"total_sent"`
	TotalReceived           int             `json:"total_received"`
	WalletTenureInDays      int             `json:"wallet_tenure_in_days"`
	TotalIncome90Days       decimal.Decimal `json:"total_income_90days"`
	TotalTransactions90Days int             `json:"total_transactions_90days"`
}

// SignalValues flattens the record for registry merging.
func (s Signals) SignalValues() map[string]any {
	return map[string]any{
		"total_transactions":        s.TotalTransactions,
		"total_sent":                s.TotalSent,
		"total_received":            s.TotalReceived,
		"wallet_tenure_in_days":     s.WalletTenureInDays,
		"total_income_90days":       s.TotalIncome90Days,
		"total_transactions_90days": s.TotalTransactions90Days,
	}
}

// Provider is the capability the invoice-style adapters depend on for wallet
// tenure, decoupled from adapter registration.
type Provider interface {
	FetchWalletSignals(ctx context.Context, walletAddress string) (Signals, error)
}

// Adapter computes wallet-activity signals from an explorer transaction
// history. The same implementation serves every chain with an
// Etherscan-compatible explorer; the registered name carries the chain.
type Adapter struct {
	name string
	txns repository.TransactionSource
	now  func() time.Time
}

// New creates a wallet adapter for the chain backed by the given explorer
// source.
func New(chain models.Chain, txns repository.TransactionSource) (*Adapter, error) {
	var name string
	switch chain {
	case models.ChainEthereum, models.ChainGoerli:
		name = "ethereum_wallet"
	case models.ChainPolygon:
		name = "polygon_wallet"
	default:
		return nil, fmt.Errorf("unsupported chain for wallet adapter: %s", chain)
	}
	return &Adapter{name: name, txns: txns, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Definition describes the adapter.
func (a *Adapter) Definition() adapter.Definition {
	return adapter.Definition{
		Name:           a.name,
		RequiredInputs: []string{"borrower_wallet_address"},
		Signals: []string{
			"total_transactions",
			"total_sent",
			"total_received",
			"wallet_tenure_in_days",
			"total_income_90days",
			"total_transactions_90days",
		},
	}
}

// Fetch implements adapter.Adapter.
func (a *Adapter) Fetch(ctx context.Context, inputs adapter.Inputs) (adapter.Record, error) {
	address, err := inputs.String("borrower_wallet_address")
	if err != nil {
		return nil, err
	}
	signals, err := a.FetchWalletSignals(ctx, address)
	if err != nil {
		return nil, err
	}
	return signals, nil
}

// FetchWalletSignals implements Provider. Address comparison against the
// history is case-insensitive; explorers return lowercase addresses.
func (a *Adapter) FetchWalletSignals(ctx context.Context, walletAddress string) (Signals, error) {
	if !util.IsHexAddress(walletAddress) {
		return Signals{}, models.NewInvalidInputError("invalid wallet address: %s", walletAddress)
	}

	transactions, err := a.txns.GetTransactions(ctx, walletAddress)
	if err != nil {
		return Signals{}, err
	}

	now := a.now()
	address := strings.ToLower(walletAddress)

	var (
		sent, received, recentCount int
		earliest                    time.Time
	)
	income := decimal.Zero
	for _, tx := range transactions {
		txTime := tx.Time()
		if earliest.IsZero() || txTime.Before(earliest) {
			earliest = txTime
		}
		isIncoming := tx.To == address
		if tx.From == address {
			sent++
		}
		if isIncoming {
			received++
		}
		if stats.DaysBetween(txTime, now) < incomeWindowDays {
			recentCount++
			if isIncoming {
				if value, verr := decimal.NewFromString(tx.Value); verr == nil {
					income = income.Add(value)
				}
			}
		}
	}

	tenure := 0
	if !earliest.IsZero() {
		tenure = stats.DaysBetween(earliest, now)
	}

	return Signals{
		TotalTransactions:       len(transactions),
		TotalSent:               sent,
		TotalReceived:           received,
		WalletTenureInDays:      tenure,
		TotalIncome90Days:       income,
		TotalTransactions90Days: recentCount,
	}, nil
}
