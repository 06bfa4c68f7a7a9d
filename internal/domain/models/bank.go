package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is one bank account transaction from the banking source.
// Amount follows the source convention: positive for money leaving the
// account, negative for money coming in.
type BankTransaction struct {
	Date       time.Time
	Amount     decimal.Decimal
	CategoryID string
	Name       string
}

// MonthlyIncome is an income bucket keyed by "YYYY-MM".
type MonthlyIncome struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// IncomeSummary aggregates payroll income over the lookback window.
type IncomeSummary struct {
	MonthlyIncome        []MonthlyIncome `json:"monthly_income"`
	TotalIncome          decimal.Decimal `json:"total_income"`
	AverageMonthlyIncome decimal.Decimal `json:"average_monthly_income"`
}
