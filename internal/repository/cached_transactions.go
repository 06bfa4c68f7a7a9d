package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"CreditPull/internal/domain/models"
	"CreditPull/internal/domain/repository"
	"CreditPull/pkg/cache"
)

// CachedTransactionSource fronts a transaction source with a short-TTL
// cache. Explorer history barely changes within a request burst, but the
// TTL stays short so fresh activity shows up quickly. A cache failure falls
// through to the underlying source.
type CachedTransactionSource struct {
	source repository.TransactionSource
	cache  cache.Service
	ttl    time.Duration
}

// NewCachedTransactionSource wraps source with the given cache.
func NewCachedTransactionSource(source repository.TransactionSource, c cache.Service, ttl time.Duration) repository.TransactionSource {
	return &CachedTransactionSource{source: source, cache: c, ttl: ttl}
}

func (s *CachedTransactionSource) GetTransactions(ctx context.Context, walletAddress string) ([]models.Transaction, error) {
	key := "txns:" + strings.ToLower(walletAddress)

	// Entries are stored as JSON strings so the memory and redis backends
	// behave identically. Any cache error counts as a miss; the explorer is
	// the source of truth.
	var encoded string
	if err := s.cache.Get(ctx, key, &encoded); err == nil {
		var cached []models.Transaction
		if err := json.Unmarshal([]byte(encoded), &cached); err == nil {
			return cached, nil
		}
	}

	transactions, err := s.source.GetTransactions(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(transactions); err == nil {
		_ = s.cache.Set(ctx, key, string(encoded), s.ttl)
	}
	return transactions, nil
}
