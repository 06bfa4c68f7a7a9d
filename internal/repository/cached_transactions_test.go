package repository

import (
	"context"
	"testing"
	"time"

	"CreditPull/internal/domain/models"
	"CreditPull/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	transactions []models.Transaction
	calls        int
}

func (s *countingSource) GetTransactions(_ context.Context, _ string) ([]models.Transaction, error) {
	s.calls++
	return s.transactions, nil
}

func TestCachedTransactionSource(t *testing.T) {
	source := &countingSource{transactions: []models.Transaction{
		{Hash: "0xabc", TimeStamp: "1680000000", Value: "100"},
	}}
	cached := NewCachedTransactionSource(source, cache.NewMemoryCache(), time.Minute)

	first, err := cached.GetTransactions(context.Background(), "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, source.calls)

	second, err := cached.GetTransactions(context.Background(), "0x2177D6C4EC1A6511184CA6FFAB4FD1D1F5BFF39F")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls, "second lookup should hit the cache, address casing ignored")

	_, err = cached.GetTransactions(context.Background(), "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}
