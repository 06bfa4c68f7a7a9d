package superfluid

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"

	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	"CreditPull/internal/domain/repository"
	"CreditPull/pkg/util"
)

// Signals describe the active money stream funding a borrower.
type Signals struct {
	CurrentFlowRate int64  `json:"current_flow_rate"`
	StreamID        string `json:"stream_id"`
}

func (s Signals) SignalValues() map[string]any {
	return map[string]any{
		"current_flow_rate": s.CurrentFlowRate,
		"stream_id":         s.StreamID,
	}
}

// Adapter reports the current stream from a payer to a borrower for one
// super token. The stream id is the keccak hash of the packed (token,
// sender, receiver) address triple, matching the on-chain id.
type Adapter struct {
	streams repository.StreamSource
}

func New(streams repository.StreamSource) *Adapter {
	return &Adapter{streams: streams}
}

func (a *Adapter) Definition() adapter.Definition {
	return adapter.Definition{
		Name: "superfluid",
		RequiredInputs: []string{
			"borrower_wallet_address",
			"payer_wallet_address",
			"super_token_address",
		},
		Signals: []string{"current_flow_rate", "stream_id"},
	}
}

func (a *Adapter) Fetch(ctx context.Context, inputs adapter.Inputs) (adapter.Record, error) {
	borrower, err := inputs.String("borrower_wallet_address")
	if err != nil {
		return nil, err
	}
	payer, err := inputs.String("payer_wallet_address")
	if err != nil {
		return nil, err
	}
	token, err := inputs.String("super_token_address")
	if err != nil {
		return nil, err
	}
	for _, address := range []string{borrower, payer, token} {
		if !util.IsHexAddress(address) {
			return nil, models.NewInvalidInputError("invalid address: %s", address)
		}
	}

	sender := strings.ToLower(payer)
	receiver := strings.ToLower(borrower)
	tokenAddress := strings.ToLower(token)

	stream, err := a.streams.GetCurrentStream(ctx, sender, receiver, tokenAddress)
	if err != nil {
		return nil, err
	}

	flowRate, err := strconv.ParseInt(stream.CurrentFlowRate, 10, 64)
	if err != nil {
		return nil, models.NewUpstreamError(err, "malformed flow rate %q", stream.CurrentFlowRate)
	}

	streamID, err := streamID(tokenAddress, sender, receiver)
	if err != nil {
		return nil, err
	}

	return Signals{CurrentFlowRate: flowRate, StreamID: streamID}, nil
}

// streamID is keccak256 over the packed 20-byte (token, sender, receiver)
// addresses, hex-encoded with a 0x prefix.
func streamID(token, sender, receiver string) (string, error) {
	packed := make([]byte, 0, 60)
	for _, address := range []string{token, sender, receiver} {
		raw, err := hex.DecodeString(strings.TrimPrefix(address, "0x"))
		if err != nil {
			return "", models.NewInvalidInputError("invalid address: %s", address)
		}
		packed = append(packed, raw...)
	}
	return "0x" + hex.EncodeToString(util.Keccak256(packed)), nil
}
