package bullanetwork

import (
	"context"
	"strconv"
	"testing"
	"time"

	"CreditPull/internal/adapters/wallet"
	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	debtorAddr   = "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f"
	creditorAddr = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
)

type stubClaimSource struct {
	claim    *models.Claim
	claimErr error
	payments map[string][]models.PaymentRecord
	calls    int
}

func (s *stubClaimSource) GetClaim(_ context.Context, _ string) (*models.Claim, error) {
	if s.claimErr != nil {
		return nil, s.claimErr
	}
	return s.claim, nil
}

func (s *stubClaimSource) GetClaimPayments(_ context.Context, creditor, debtor string) ([]models.PaymentRecord, error) {
	s.calls++
	if creditor != "" {
		return s.payments[creditor], nil
	}
	return s.payments[debtor], nil
}

type fixedTenure int

func (f fixedTenure) FetchWalletSignals(_ context.Context, _ string) (wallet.Signals, error) {
	return wallet.Signals{WalletTenureInDays: int(f)}, nil
}

func claimPayment(id string, at time.Time) models.PaymentRecord {
	return models.PaymentRecord{
		ID:          id,
		From:        debtorAddr,
		To:          creditorAddr,
		TokenSymbol: "USDC",
		Timestamp:   strconv.FormatInt(at.Unix(), 10),
		Amount:      "10000000",
	}
}

func TestFetch(t *testing.T) {
	now := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	source := &stubClaimSource{
		claim: &models.Claim{
			ID:         "7",
			TokenOwner: creditorAddr,
			Amount:     decimal.NewFromInt(500),
			Status:     "Repaying",
			Creditor:   creditorAddr,
			Debtor:     debtorAddr,
			DueDate:    now.AddDate(0, 0, 10),
		},
		payments: map[string][]models.PaymentRecord{
			debtorAddr:   {claimPayment("a", now.AddDate(0, 0, -20))},
			creditorAddr: {claimPayment("b", now.AddDate(0, 0, -40))},
		},
	}

	a := New(models.ChainPolygon, source, fixedTenure(120))
	a.now = func() time.Time { return now }

	record, err := a.Fetch(context.Background(), adapter.Inputs{
		"borrower_wallet_address": creditorAddr,
		"claim_id":                float64(7),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)

	signals, ok := record.(Signals)
	require.True(t, ok)
	assert.Equal(t, "Repaying", signals.InvoiceStatus)
	assert.True(t, signals.PayerHasAcceptedInvoice)
	assert.Equal(t, 2, signals.MutualCount)
	assert.Equal(t, int64(20), signals.MutualTotalAmount)
	assert.Equal(t, 120, signals.PayerTenure)
	assert.True(t, signals.PayeeMatchBorrower)
	assert.True(t, signals.BorrowerOwnInvoice)
	assert.Equal(t, 10, signals.DaysUntilDueDate)

	values := signals.SignalValues()
	assert.Equal(t, "Repaying", values["invoice_status"])
	assert.Equal(t, true, values["payer_has_accepted_invoice"])
}

func TestFetchNoPaymentsYet(t *testing.T) {
	now := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	source := &stubClaimSource{
		claim: &models.Claim{
			TokenOwner: creditorAddr,
			Status:     "Pending",
			Creditor:   creditorAddr,
			Debtor:     debtorAddr,
			DueDate:    now.AddDate(0, 0, 30),
		},
	}

	a := New(models.ChainEthereum, source, fixedTenure(0))
	a.now = func() time.Time { return now }

	record, err := a.Fetch(context.Background(), adapter.Inputs{
		"borrower_wallet_address": creditorAddr,
		"claim_id":                "1",
	})
	require.NoError(t, err)

	signals := record.(Signals)
	assert.False(t, signals.PayerHasAcceptedInvoice)
	assert.Equal(t, models.NoHistorySentinelDays, signals.PayerRecent)
}

func TestFetchClaimNotFound(t *testing.T) {
	source := &stubClaimSource{claimErr: models.NewNotFoundError("claim not found with id: 9")}
	a := New(models.ChainEthereum, source, fixedTenure(0))

	_, err := a.Fetch(context.Background(), adapter.Inputs{
		"borrower_wallet_address": creditorAddr,
		"claim_id":                "9",
	})
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Zero(t, source.calls)
}

func TestDefinitionMatchesRecord(t *testing.T) {
	a := New(models.ChainEthereum, &stubClaimSource{}, fixedTenure(0))

	def := a.Definition()
	values := Signals{}.SignalValues()
	require.Len(t, values, len(def.Signals))
	for _, name := range def.Signals {
		assert.Contains(t, values, name)
	}
}
