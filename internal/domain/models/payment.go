package models

import "time"

// PaymentRecord is one observed money movement returned by a payment-graph
// source. Amount and Timestamp are string-encoded the way subgraphs return
// them. TokenSymbol is optional: sources that already know the symbol (e.g.
// claim payments) set it and skip the address lookup during enrichment.
type PaymentRecord struct {
	ID              string `json:"id"`
	ContractAddress string `json:"contractAddress"`
	TokenAddress    string `json:"tokenAddress"`
	To              string `json:"to"`
	From            string `json:"from"`
	Timestamp       string `json:"timestamp"`
	TxHash          string `json:"txHash"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	AmountInCrypto  string `json:"amountInCrypto"`
	TokenSymbol     string `json:"-"`
}

// EnrichedPayment is a PaymentRecord with the derived columns attached.
type EnrichedPayment struct {
	ID            string
	From          string
	To            string
	TxnTime       time.Time
	TokenSymbol   string
	TokenUSDPrice float64
	Amount        float64
	AmountUSD     int64
}

// NoHistorySentinelDays is reported as the most-recent-activity age when a
// party has no payment history at all. It is a poor man's infinity inherited
// from the scoring pipeline and must stay at 999 for compatibility.
const NoHistorySentinelDays = 999

// PaymentStats are descriptive statistics over a slice of enriched payments.
type PaymentStats struct {
	TotalAmount        int64 `json:"total_amount"`
	TotalTxns          int   `json:"total_txns"`
	EarliestTxnAgeDays int   `json:"earliest_txn_age_in_days"`
	LastTxnAgeDays     int   `json:"last_txn_age_in_days"`
	UniquePayees       int   `json:"unique_payees"`
	UniquePayers       int   `json:"unique_payers"`
}

// EmptyPaymentStats is the well-defined zero value returned for an empty
// payment history.
func EmptyPaymentStats() PaymentStats {
	return PaymentStats{LastTxnAgeDays: NoHistorySentinelDays}
}
