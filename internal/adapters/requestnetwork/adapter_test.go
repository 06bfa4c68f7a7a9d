package requestnetwork

import (
	"context"
	"strconv"
	"testing"
	"time"

	"CreditPull/internal/adapters/pairedparty"
	"CreditPull/internal/adapters/wallet"
	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	payerAddr    = "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f"
	payeeAddr    = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	usdcEthereum = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
)

type stubInvoiceSource struct {
	invoice *models.Invoice
	err     error
	calls   int
}

func (s *stubInvoiceSource) GetInvoice(_ context.Context, _ string) (*models.Invoice, error) {
	s.calls++
	return s.invoice, s.err
}

type stubPaymentSource struct {
	byParty map[string][]models.PaymentRecord
	calls   int
}

func (s *stubPaymentSource) GetPayments(_ context.Context, from, to string) ([]models.PaymentRecord, error) {
	s.calls++
	if from != "" {
		return s.byParty[from], nil
	}
	return s.byParty[to], nil
}

type fixedTenure int

func (f fixedTenure) FetchWalletSignals(_ context.Context, _ string) (wallet.Signals, error) {
	return wallet.Signals{WalletTenureInDays: int(f)}, nil
}

func TestFetch(t *testing.T) {
	now := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	invoices := &stubInvoiceSource{invoice: &models.Invoice{
		TokenOwner: payeeAddr,
		Payer:      payerAddr,
		Payee:      payeeAddr,
		Amount:     decimal.NewFromInt(1000),
		DueDate:    now.AddDate(0, 0, 14),
	}}
	payments := &stubPaymentSource{byParty: map[string][]models.PaymentRecord{
		payerAddr: {{
			ID:           "1",
			From:         payerAddr,
			To:           payeeAddr,
			TokenAddress: usdcEthereum,
			Timestamp:    strconv.FormatInt(now.AddDate(0, 0, -7).Unix(), 10),
			Amount:       "25000000",
		}},
		payeeAddr: {{
			// Same payment returned by the incoming query; dedupe by id.
			ID:           "1",
			From:         payerAddr,
			To:           payeeAddr,
			TokenAddress: usdcEthereum,
			Timestamp:    strconv.FormatInt(now.AddDate(0, 0, -7).Unix(), 10),
			Amount:       "25000000",
		}},
	}}

	a := New(models.ChainEthereum, invoices, payments, fixedTenure(365))
	a.now = func() time.Time { return now }

	record, err := a.Fetch(context.Background(), adapter.Inputs{
		"borrower_wallet_address": payeeAddr,
		"receivable_param":        "42",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, payments.calls)

	signals, ok := record.(pairedparty.Signals)
	require.True(t, ok)
	assert.Equal(t, 365, signals.PayerTenure)
	assert.Equal(t, 1, signals.MutualCount)
	assert.Equal(t, int64(25), signals.MutualTotalAmount)
	assert.Equal(t, 7, signals.PayerRecent)
	assert.True(t, signals.PayeeMatchBorrower)
	assert.Equal(t, 14, signals.DaysUntilDueDate)
	assert.True(t, signals.PayerOnAllowlist)
}

func TestFetchNumericReceivableParam(t *testing.T) {
	invoices := &stubInvoiceSource{invoice: &models.Invoice{
		Payer: payerAddr,
		Payee: payeeAddr,
	}}
	a := New(models.ChainEthereum, invoices, &stubPaymentSource{}, fixedTenure(0))

	_, err := a.Fetch(context.Background(), adapter.Inputs{
		"borrower_wallet_address": payeeAddr,
		"receivable_param":        float64(42),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, invoices.calls)
}

func TestFetchInvalidBorrowerAddress(t *testing.T) {
	invoices := &stubInvoiceSource{}
	a := New(models.ChainEthereum, invoices, &stubPaymentSource{}, fixedTenure(0))

	_, err := a.Fetch(context.Background(), adapter.Inputs{
		"borrower_wallet_address": "0xnope",
		"receivable_param":        "42",
	})
	var invalid *models.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Zero(t, invoices.calls)
}

func TestFetchInvoiceNotFound(t *testing.T) {
	invoices := &stubInvoiceSource{err: models.NewNotFoundError("invoice not found")}
	payments := &stubPaymentSource{}
	a := New(models.ChainEthereum, invoices, payments, fixedTenure(0))

	_, err := a.Fetch(context.Background(), adapter.Inputs{
		"borrower_wallet_address": payeeAddr,
		"receivable_param":        "42",
	})
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Zero(t, payments.calls)
}

func TestDefinitionMatchesRecord(t *testing.T) {
	a := New(models.ChainEthereum, &stubInvoiceSource{}, &stubPaymentSource{}, fixedTenure(0))

	def := a.Definition()
	values := pairedparty.Signals{}.SignalValues()
	require.Len(t, values, len(def.Signals))
	for _, name := range def.Signals {
		assert.Contains(t, values, name)
	}
}
