package lendingpool

import (
	"context"
	"strings"

	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	"CreditPull/internal/domain/repository"
	"CreditPull/pkg/util"

	"github.com/shopspring/decimal"
)

// Payment terms shared by every pool until they move on-chain.
const (
	intervalInDaysMax  = 90
	intervalInDaysMin  = 0
	invoiceAmountRatio = 0.8
)

// Signals describe one lending pool's lending policy and token.
type Signals struct {
	PoolAddress        string          `json:"pool_address"`
	APR                int64           `json:"apr"`
	MaxCreditAmount    decimal.Decimal `json:"max_credit_amount"`
	TokenAddress       string          `json:"token_address"`
	TokenName          string          `json:"token_name"`
	TokenSymbol        string          `json:"token_symbol"`
	TokenDecimal       int             `json:"token_decimal"`
	IntervalInDaysMax  int             `json:"interval_in_days_max"`
	IntervalInDaysMin  int             `json:"interval_in_days_min"`
	InvoiceAmountRatio float64         `json:"invoice_amount_ratio"`
	IsTestnet          bool            `json:"is_testnet"`
}

func (s Signals) SignalValues() map[string]any {
	return map[string]any{
		"pool_address":         s.PoolAddress,
		"apr":                  s.APR,
		"max_credit_amount":    s.MaxCreditAmount,
		"token_address":        s.TokenAddress,
		"token_name":           s.TokenName,
		"token_symbol":         s.TokenSymbol,
		"token_decimal":        s.TokenDecimal,
		"interval_in_days_max": s.IntervalInDaysMax,
		"interval_in_days_min": s.IntervalInDaysMin,
		"invoice_amount_ratio": s.InvoiceAmountRatio,
		"is_testnet":           s.IsTestnet,
	}
}

// Adapter reads lending policy signals for a registered pool from its
// on-chain pool config contract.
type Adapter struct {
	registry PoolRegistry
	pools    repository.PoolSource
}

func New(registry PoolRegistry, pools repository.PoolSource) *Adapter {
	return &Adapter{registry: registry, pools: pools}
}

func (a *Adapter) Definition() adapter.Definition {
	return adapter.Definition{
		Name:           "lending_pools",
		RequiredInputs: []string{"pool_address"},
		Signals: []string{
			"pool_address",
			"apr",
			"max_credit_amount",
			"token_address",
			"token_name",
			"token_symbol",
			"token_decimal",
			"interval_in_days_max",
			"interval_in_days_min",
			"invoice_amount_ratio",
			"is_testnet",
		},
	}
}

// Fetch resolves the pool from the registry and reads its summary from the
// chain. An unregistered address is a not-found, not an upstream failure.
func (a *Adapter) Fetch(ctx context.Context, inputs adapter.Inputs) (adapter.Record, error) {
	poolAddress, err := inputs.String("pool_address")
	if err != nil {
		return nil, err
	}
	if !util.IsHexAddress(poolAddress) {
		return nil, models.NewInvalidInputError("invalid pool address: %s", poolAddress)
	}

	pool, ok := a.registry.Lookup(poolAddress)
	if !ok {
		return nil, models.NewNotFoundError("pool settings not found for address %s", poolAddress)
	}

	summary, err := a.pools.GetPoolSummary(ctx, pool)
	if err != nil {
		return nil, err
	}

	return Signals{
		PoolAddress:        pool.PoolAddress,
		APR:                summary.APRBps,
		MaxCreditAmount:    summary.MaxCreditAmount,
		TokenAddress:       summary.TokenAddress,
		TokenName:          summary.TokenName,
		TokenSymbol:        summary.TokenSymbol,
		TokenDecimal:       summary.TokenDecimal,
		IntervalInDaysMax:  intervalInDaysMax,
		IntervalInDaysMin:  intervalInDaysMin,
		InvoiceAmountRatio: invoiceAmountRatio,
		IsTestnet:          pool.Chain.IsTestnet(),
	}, nil
}

func normalizeAddress(address string) string {
	return strings.ToLower(address)
}
