package wallet

import (
	"context"
	"strconv"
	"testing"
	"time"

	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	"CreditPull/pkg/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const borrower = "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f"

type stubTransactionSource struct {
	transactions []models.Transaction
	err          error
	calls        int
}

func (s *stubTransactionSource) GetTransactions(_ context.Context, _ string) ([]models.Transaction, error) {
	s.calls++
	return s.transactions, s.err
}

func tx(from, to string, at time.Time, value string) models.Transaction {
	return models.Transaction{
		From:      from,
		To:        to,
		TimeStamp: strconv.FormatInt(at.Unix(), 10),
		Value:     value,
	}
}

func TestFetchWalletSignals(t *testing.T) {
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	other := "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"

	source := &stubTransactionSource{transactions: []models.Transaction{
		tx(borrower, other, now.AddDate(0, 0, -760), "100"),
		tx(borrower, other, now.AddDate(0, 0, -715), "200"),
		tx(other, borrower, now.AddDate(0, 0, -715), "300"),
		tx(borrower, other, now.AddDate(0, 0, -5), "400"),
		tx(other, borrower, now.AddDate(0, 0, -2), "500"),
	}}

	a, err := New(models.ChainEthereum, source)
	require.NoError(t, err)
	a.now = func() time.Time { return now }

	signals, err := a.FetchWalletSignals(context.Background(), borrower)
	require.NoError(t, err)

	assert.Equal(t, 5, signals.TotalTransactions)
	assert.Equal(t, 3, signals.TotalSent)
	assert.Equal(t, 2, signals.TotalReceived)
	assert.Equal(t, 760, signals.WalletTenureInDays)
	assert.Equal(t, 2, signals.TotalTransactions90Days)
	assert.True(t, decimal.NewFromInt(500).Equal(signals.TotalIncome90Days),
		"only received value inside the window counts as income, got %s", signals.TotalIncome90Days)
}

func TestFetchWalletSignalsCaseInsensitive(t *testing.T) {
	now := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	source := &stubTransactionSource{transactions: []models.Transaction{
		tx(borrower, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", now.AddDate(0, 0, -10), "1"),
	}}

	a, err := New(models.ChainPolygon, source)
	require.NoError(t, err)
	a.now = func() time.Time { return now }

	// EIP-55 mixed-case form of the all-lowercase borrower address.
	checksummed := util.ChecksumAddress(borrower)
	require.NotEqual(t, borrower, checksummed)

	signals, err := a.FetchWalletSignals(context.Background(), checksummed)
	require.NoError(t, err)
	assert.Equal(t, 1, signals.TotalSent)
}

func TestFetchWalletSignalsEmptyHistory(t *testing.T) {
	source := &stubTransactionSource{}
	a, err := New(models.ChainEthereum, source)
	require.NoError(t, err)

	signals, err := a.FetchWalletSignals(context.Background(), borrower)
	require.NoError(t, err)
	assert.Equal(t, 0, signals.TotalTransactions)
	assert.Equal(t, 0, signals.WalletTenureInDays)
	assert.True(t, signals.TotalIncome90Days.IsZero())
}

func TestFetchWalletSignalsInvalidAddress(t *testing.T) {
	source := &stubTransactionSource{}
	a, err := New(models.ChainEthereum, source)
	require.NoError(t, err)

	_, err = a.FetchWalletSignals(context.Background(), "not-an-address")
	var invalid *models.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Zero(t, source.calls)
}

func TestAdapterNames(t *testing.T) {
	source := &stubTransactionSource{}

	eth, err := New(models.ChainEthereum, source)
	require.NoError(t, err)
	assert.Equal(t, "ethereum_wallet", eth.Definition().Name)

	poly, err := New(models.ChainPolygon, source)
	require.NoError(t, err)
	assert.Equal(t, "polygon_wallet", poly.Definition().Name)

	_, err = New(models.Chain("solana"), source)
	assert.Error(t, err)
}

func TestDefinitionMatchesRecord(t *testing.T) {
	a, err := New(models.ChainEthereum, &stubTransactionSource{})
	require.NoError(t, err)

	values := Signals{}.SignalValues()
	def := a.Definition()
	require.Len(t, values, len(def.Signals))
	for _, name := range def.Signals {
		assert.Contains(t, values, name)
	}
}

func TestFetchRequiresWalletInput(t *testing.T) {
	a, err := New(models.ChainEthereum, &stubTransactionSource{})
	require.NoError(t, err)

	_, err = a.Fetch(context.Background(), adapter.Inputs{})
	var invalid *models.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}
