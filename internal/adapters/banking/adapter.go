package banking

import (
	"context"
	"sort"
	"time"

	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	"CreditPull/internal/domain/repository"

	"github.com/shopspring/decimal"
)

const (
	lookbackDays      = 730
	payrollCategoryID = "21009000"
)

// Signals are the banking income and balance signals for one linked account.
type Signals struct {
	Income                models.IncomeSummary `json:"income"`
	CurrentAccountBalance decimal.Decimal      `json:"current_account_balance"`
}

func (s Signals) SignalValues() map[string]any {
	return map[string]any{
		"income":                  s.Income,
		"current_account_balance": s.CurrentAccountBalance,
	}
}

// Adapter derives income signals from a borrower's linked bank account. The
// public token from the link flow is exchanged for an access token, then the
// last 24 months of transactions and the available balance are fetched.
type Adapter struct {
	bank repository.BankSource
	now  func() time.Time
}

func New(bank repository.BankSource) *Adapter {
	return &Adapter{bank: bank, now: func() time.Time { return time.Now().UTC() }}
}

func (a *Adapter) Definition() adapter.Definition {
	return adapter.Definition{
		Name:           "banking",
		RequiredInputs: []string{"bank_account_id", "bank_public_token"},
		Signals:        []string{"income", "current_account_balance"},
	}
}

func (a *Adapter) Fetch(ctx context.Context, inputs adapter.Inputs) (adapter.Record, error) {
	publicToken, err := inputs.String("bank_public_token")
	if err != nil {
		return nil, err
	}

	accessToken, err := a.bank.ExchangeAccessToken(ctx, publicToken)
	if err != nil {
		return nil, err
	}

	end := a.now()
	start := end.AddDate(0, 0, -lookbackDays)
	transactions, err := a.bank.GetTransactions(ctx, accessToken, start, end)
	if err != nil {
		return nil, err
	}

	balance, err := a.bank.GetAvailableBalance(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	return Signals{
		Income:                aggregateIncome(transactions),
		CurrentAccountBalance: balance,
	}, nil
}

// aggregateIncome buckets payroll transactions by calendar month. Negative
// amounts are money coming into the account, so they are negated on the way
// in. Months are reported in ascending order.
func aggregateIncome(transactions []models.BankTransaction) models.IncomeSummary {
	byMonth := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.CategoryID != payrollCategoryID {
			continue
		}
		month := tx.Date.Format("2006-01")
		byMonth[month] = byMonth[month].Sub(tx.Amount)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	monthly := make([]models.MonthlyIncome, 0, len(months))
	total := decimal.Zero
	for _, month := range months {
		monthly = append(monthly, models.MonthlyIncome{Month: month, Amount: byMonth[month]})
		total = total.Add(byMonth[month])
	}

	average := decimal.Zero
	if len(monthly) > 0 {
		average = total.DivRound(decimal.NewFromInt(int64(len(monthly))), 2)
	}

	return models.IncomeSummary{
		MonthlyIncome:        monthly,
		TotalIncome:          total,
		AverageMonthlyIncome: average,
	}
}
