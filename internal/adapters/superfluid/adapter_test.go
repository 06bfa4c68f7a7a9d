package superfluid

import (
	"context"
	"testing"

	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	borrowerAddr = "0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f"
	payerAddr    = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	tokenAddr    = "0xcaa7349cea390f89641fe306d93591f87595dc1f"
)

type stubStreamSource struct {
	stream      *models.Stream
	err         error
	gotSender   string
	gotReceiver string
	gotToken    string
}

func (s *stubStreamSource) GetCurrentStream(_ context.Context, sender, receiver, token string) (*models.Stream, error) {
	s.gotSender, s.gotReceiver, s.gotToken = sender, receiver, token
	return s.stream, s.err
}

func validInputs() adapter.Inputs {
	return adapter.Inputs{
		"borrower_wallet_address": borrowerAddr,
		"payer_wallet_address":    payerAddr,
		"super_token_address":     tokenAddr,
	}
}

func TestFetch(t *testing.T) {
	source := &stubStreamSource{stream: &models.Stream{
		ID:              "existing",
		CurrentFlowRate: "385802469135802",
	}}
	a := New(source)

	record, err := a.Fetch(context.Background(), validInputs())
	require.NoError(t, err)

	signals, ok := record.(Signals)
	require.True(t, ok)
	assert.Equal(t, int64(385802469135802), signals.CurrentFlowRate)
	assert.Len(t, signals.StreamID, 66)
	assert.True(t, signals.StreamID[:2] == "0x")

	// Payer streams to the borrower.
	assert.Equal(t, payerAddr, source.gotSender)
	assert.Equal(t, borrowerAddr, source.gotReceiver)
	assert.Equal(t, tokenAddr, source.gotToken)
}

func TestFetchStreamIDDeterministic(t *testing.T) {
	source := &stubStreamSource{stream: &models.Stream{CurrentFlowRate: "1"}}
	a := New(source)

	first, err := a.Fetch(context.Background(), validInputs())
	require.NoError(t, err)
	second, err := a.Fetch(context.Background(), validInputs())
	require.NoError(t, err)
	assert.Equal(t, first.(Signals).StreamID, second.(Signals).StreamID)

	// Mixed-case input addresses hash to the same id.
	inputs := validInputs()
	inputs["payer_wallet_address"] = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	third, err := a.Fetch(context.Background(), inputs)
	require.NoError(t, err)
	assert.Equal(t, first.(Signals).StreamID, third.(Signals).StreamID)
}

func TestFetchStreamNotFound(t *testing.T) {
	source := &stubStreamSource{err: models.NewNotFoundError("stream not found")}
	a := New(source)

	_, err := a.Fetch(context.Background(), validInputs())
	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestFetchInvalidTokenAddress(t *testing.T) {
	a := New(&stubStreamSource{})
	inputs := validInputs()
	inputs["super_token_address"] = "0x123"

	_, err := a.Fetch(context.Background(), inputs)
	var invalid *models.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestDefinitionMatchesRecord(t *testing.T) {
	def := New(&stubStreamSource{}).Definition()
	values := Signals{}.SignalValues()
	require.Len(t, values, len(def.Signals))
	for _, name := range def.Signals {
		assert.Contains(t, values, name)
	}
}
