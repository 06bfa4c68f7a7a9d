package usecase

import (
	"context"
	"sync"
	"testing"

	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	applogger "CreditPull/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecord map[string]any

func (r fakeRecord) SignalValues() map[string]any { return r }

type fakeAdapter struct {
	def    adapter.Definition
	record fakeRecord
	err    error

	mu        sync.Mutex
	calls     int
	gotInputs adapter.Inputs
}

func (f *fakeAdapter) Definition() adapter.Definition { return f.def }

func (f *fakeAdapter) Fetch(_ context.Context, inputs adapter.Inputs) (adapter.Record, error) {
	f.mu.Lock()
	f.calls++
	f.gotInputs = inputs
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func newTestRegistry(t *testing.T, adapters ...adapter.Adapter) *Registry {
	t.Helper()
	r, err := NewRegistry(testLogger(t), adapters)
	require.NoError(t, err)
	return r
}

func walletFake() *fakeAdapter {
	return &fakeAdapter{
		def: adapter.Definition{
			Name:           "ethereum_wallet",
			RequiredInputs: []string{"borrower_wallet_address"},
			Signals:        []string{"total_transactions", "wallet_tenure_in_days"},
		},
		record: fakeRecord{"total_transactions": 5, "wallet_tenure_in_days": 760},
	}
}

func allowlistFake() *fakeAdapter {
	return &fakeAdapter{
		def: adapter.Definition{
			Name:           "allowlist",
			RequiredInputs: []string{"borrower_wallet_address"},
			Signals:        []string{"on_allowlist"},
		},
		record: fakeRecord{"on_allowlist": true},
	}
}

func TestFindRequiredAdapters(t *testing.T) {
	wallet, allow := walletFake(), allowlistFake()
	r := newTestRegistry(t, wallet, allow)

	required, err := r.FindRequiredAdapters([]string{
		"ethereum_wallet.total_transactions",
		"ethereum_wallet.wallet_tenure_in_days",
		"allowlist.on_allowlist",
		"ethereum_wallet.total_transactions",
	})
	require.NoError(t, err)
	require.Len(t, required, 2)
	assert.Equal(t, "ethereum_wallet", required[0].Definition().Name)
	assert.Equal(t, "allowlist", required[1].Definition().Name)
}

func TestFindRequiredAdaptersUnknownAdapter(t *testing.T) {
	r := newTestRegistry(t, walletFake())

	_, err := r.FindRequiredAdapters([]string{"sonar.depth"})
	var notFound *models.AdapterNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "sonar", notFound.Adapter)
}

func TestFindRequiredAdaptersUnknownSignal(t *testing.T) {
	r := newTestRegistry(t, walletFake())

	_, err := r.FindRequiredAdapters([]string{"ethereum_wallet.favorite_color"})
	var notFound *models.SignalNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "favorite_color", notFound.Signal)
	assert.Equal(t, "ethereum_wallet", notFound.Adapter)
}

func TestFindRequiredAdaptersMalformedName(t *testing.T) {
	r := newTestRegistry(t, walletFake())

	for _, name := range []string{"nodot", ".leading", "trailing.", ""} {
		_, err := r.FindRequiredAdapters([]string{name})
		var invalid *models.InvalidInputError
		assert.ErrorAs(t, err, &invalid, "name %q", name)
	}
}

func TestFetchSignalsFiltersToRequested(t *testing.T) {
	wallet, allow := walletFake(), allowlistFake()
	r := newTestRegistry(t, wallet, allow)

	signals, err := r.FetchSignals(context.Background(),
		[]string{"ethereum_wallet.total_transactions", "allowlist.on_allowlist"},
		map[string]any{"borrower_wallet_address": "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"ethereum_wallet.total_transactions": 5,
		"allowlist.on_allowlist":             true,
	}, signals)
	assert.Equal(t, 1, wallet.calls)
	assert.Equal(t, 1, allow.calls)
}

func TestFetchSignalsSubsetsInputsPerAdapter(t *testing.T) {
	wallet := walletFake()
	r := newTestRegistry(t, wallet)

	_, err := r.FetchSignals(context.Background(),
		[]string{"ethereum_wallet.total_transactions"},
		map[string]any{
			"borrower_wallet_address": "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f",
			"receivable_param":        "42",
		})
	require.NoError(t, err)

	// Only the adapter's declared inputs are passed through.
	assert.Equal(t, adapter.Inputs{
		"borrower_wallet_address": "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f",
	}, wallet.gotInputs)
}

func TestFetchSignalsMissingInput(t *testing.T) {
	wallet := walletFake()
	r := newTestRegistry(t, wallet)

	_, err := r.FetchSignals(context.Background(),
		[]string{"ethereum_wallet.total_transactions"},
		map[string]any{})
	var missing *models.MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "borrower_wallet_address", missing.Input)
	assert.Zero(t, wallet.calls, "no adapter fetch before input validation")
}

func TestFetchSignalsAdapterFailureFailsRequest(t *testing.T) {
	wallet := walletFake()
	wallet.err = models.NewUpstreamError(assert.AnError, "explorer down")
	allow := allowlistFake()
	r := newTestRegistry(t, wallet, allow)

	_, err := r.FetchSignals(context.Background(),
		[]string{"ethereum_wallet.total_transactions", "allowlist.on_allowlist"},
		map[string]any{"borrower_wallet_address": "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f"})
	var upstream *models.UpstreamError
	assert.ErrorAs(t, err, &upstream)
}

func TestFetchSignalsPublishesEvent(t *testing.T) {
	published := make(chan models.FetchEvent, 1)
	publisher := &fakePublisher{events: published}
	r, err := NewRegistry(testLogger(t), []adapter.Adapter{walletFake()}, WithPublisher(publisher))
	require.NoError(t, err)

	_, err = r.FetchSignals(context.Background(),
		[]string{"ethereum_wallet.total_transactions"},
		map[string]any{"borrower_wallet_address": "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f"})
	require.NoError(t, err)

	select {
	case event := <-published:
		assert.Equal(t, []string{"ethereum_wallet.total_transactions"}, event.SignalNames)
		assert.Equal(t, []string{"ethereum_wallet"}, event.Adapters)
		assert.False(t, event.FetchedAt.IsZero())
	default:
		t.Fatal("no fetch event published")
	}
}

func TestNewRegistryDuplicateName(t *testing.T) {
	_, err := NewRegistry(testLogger(t), []adapter.Adapter{walletFake(), walletFake()})
	assert.Error(t, err)
}

type fakePublisher struct {
	events chan models.FetchEvent
}

func (p *fakePublisher) PublishFetchEvent(_ context.Context, event models.FetchEvent) error {
	p.events <- event
	return nil
}

func (p *fakePublisher) Close() error { return nil }
