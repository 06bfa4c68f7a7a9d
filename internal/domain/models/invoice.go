package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a receivable resolved from the invoice-lookup source. Addresses
// are stored lowercase.
type Invoice struct {
	TokenOwner   string
	Currency     string
	Amount       decimal.Decimal
	Status       string
	Payer        string
	Payee        string
	CreationDate time.Time
	DueDate      time.Time
}

// Claim is an invoice-like receivable on the claim network. Creditor is the
// payee, Debtor the payer.
type Claim struct {
	ID           string
	TokenOwner   string
	TokenSymbol  string
	Amount       decimal.Decimal
	Status       string
	Creditor     string
	Debtor       string
	CreationDate time.Time
	DueDate      time.Time
}
