package models

import "github.com/shopspring/decimal"

// PoolSetting describes a known lending pool. The registry of settings is
// fixed at process start.
type PoolSetting struct {
	PoolAddress string
	Chain       Chain
	PoolType    string
}

// PoolSummary is the pool configuration read from the pool config contract.
type PoolSummary struct {
	TokenAddress    string
	APRBps          int64
	MaxCreditAmount decimal.Decimal
	TokenName       string
	TokenSymbol     string
	TokenDecimal    int
}

// Stream is an active money stream between two parties.
type Stream struct {
	ID                 string `json:"id"`
	CurrentFlowRate    string `json:"currentFlowRate"`
	CreatedAtTimestamp string `json:"createdAtTimestamp"`
	UpdatedAtTimestamp string `json:"updatedAtTimestamp"`
}
