package allowlist

import (
	"context"
	"testing"

	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	applogger "CreditPull/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const borrower = "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f"

type stubAllowlistSource struct {
	found      bool
	err        error
	gotTestnet bool
}

func (s *stubAllowlistSource) IsOnAllowlist(_ context.Context, _ string, testnet bool) (bool, error) {
	s.gotTestnet = testnet
	return s.found, s.err
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func TestFetchFound(t *testing.T) {
	source := &stubAllowlistSource{found: true}
	a := New(models.ChainEthereum, source, testLogger(t))

	record, err := a.Fetch(context.Background(), adapter.Inputs{"borrower_wallet_address": borrower})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"on_allowlist": true}, record.SignalValues())
	assert.False(t, source.gotTestnet)
}

func TestFetchTestnetChain(t *testing.T) {
	source := &stubAllowlistSource{}
	a := New(models.ChainGoerli, source, testLogger(t))

	_, err := a.Fetch(context.Background(), adapter.Inputs{"borrower_wallet_address": borrower})
	require.NoError(t, err)
	assert.True(t, source.gotTestnet)
}

func TestFetchLookupErrorDefaultsToFalse(t *testing.T) {
	source := &stubAllowlistSource{err: assert.AnError}
	a := New(models.ChainEthereum, source, testLogger(t))

	record, err := a.Fetch(context.Background(), adapter.Inputs{"borrower_wallet_address": borrower})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"on_allowlist": false}, record.SignalValues())
}

func TestFetchInvalidAddress(t *testing.T) {
	source := &stubAllowlistSource{}
	a := New(models.ChainEthereum, source, testLogger(t))

	_, err := a.Fetch(context.Background(), adapter.Inputs{"borrower_wallet_address": "bogus"})
	var invalid *models.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}
