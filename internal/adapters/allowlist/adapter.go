package allowlist

import (
	"context"

	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	"CreditPull/internal/domain/repository"
	applogger "CreditPull/pkg/logger"
	"CreditPull/pkg/util"
)

// Signals is the allowlist membership record.
type Signals struct {
	OnAllowlist bool `json:"on_allowlist"`
}

func (s Signals) SignalValues() map[string]any {
	return map[string]any{"on_allowlist": s.OnAllowlist}
}

// Adapter reports allowlist membership for a borrower. A lookup failure is
// reported as not-on-allowlist rather than an error; membership is a
// non-critical signal and false is the safe answer.
type Adapter struct {
	chain  models.Chain
	source repository.AllowlistSource
	logger *applogger.Logger
}

func New(chain models.Chain, source repository.AllowlistSource, logger *applogger.Logger) *Adapter {
	return &Adapter{chain: chain, source: source, logger: logger}
}

func (a *Adapter) Definition() adapter.Definition {
	return adapter.Definition{
		Name:           "allowlist",
		RequiredInputs: []string{"borrower_wallet_address"},
		Signals:        []string{"on_allowlist"},
	}
}

func (a *Adapter) Fetch(ctx context.Context, inputs adapter.Inputs) (adapter.Record, error) {
	borrower, err := inputs.String("borrower_wallet_address")
	if err != nil {
		return nil, err
	}
	if !util.IsHexAddress(borrower) {
		return nil, models.NewInvalidInputError("invalid borrower wallet address: %s", borrower)
	}

	found, err := a.source.IsOnAllowlist(ctx, borrower, a.chain.IsTestnet())
	if err != nil {
		a.logger.Warn("allowlist lookup failed, defaulting to not on allowlist",
			applogger.String("wallet_address", borrower),
			applogger.Error(err))
		return Signals{OnAllowlist: false}, nil
	}
	return Signals{OnAllowlist: found}, nil
}
