package bullanetwork

import (
	"context"
	"time"

	"CreditPull/internal/adapters/pairedparty"
	"CreditPull/internal/adapters/wallet"
	"CreditPull/internal/domain/adapter"
	"CreditPull/internal/domain/models"
	"CreditPull/internal/domain/repository"
	"CreditPull/pkg/util"

	"golang.org/x/sync/errgroup"
)

const adapterName = "bulla_network"

// Signals extends the paired-party record with the claim lifecycle fields.
type Signals struct {
	pairedparty.Signals

	InvoiceStatus           string `json:"invoice_status"`
	PayerHasAcceptedInvoice bool   `json:"payer_has_accepted_invoice"`
}

func (s Signals) SignalValues() map[string]any {
	values := s.Signals.SignalValues()
	values["invoice_status"] = s.InvoiceStatus
	values["payer_has_accepted_invoice"] = s.PayerHasAcceptedInvoice
	return values
}

// Adapter computes claim and payment-history signals for a Bulla claim. The
// claim's creditor maps to the payee role and the debtor to the payer role,
// so the payment aggregation is shared with the invoice adapter.
type Adapter struct {
	chain   models.Chain
	claims  repository.ClaimSource
	wallets wallet.Provider
	now     func() time.Time
}

func New(chain models.Chain, claims repository.ClaimSource, wallets wallet.Provider) *Adapter {
	return &Adapter{
		chain:   chain,
		claims:  claims,
		wallets: wallets,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (a *Adapter) Definition() adapter.Definition {
	return adapter.Definition{
		Name:           adapterName,
		RequiredInputs: []string{"borrower_wallet_address", "claim_id"},
		Signals:        append(pairedparty.SignalNames(), "invoice_status", "payer_has_accepted_invoice"),
	}
}

func (a *Adapter) Fetch(ctx context.Context, inputs adapter.Inputs) (adapter.Record, error) {
	borrower, err := inputs.String("borrower_wallet_address")
	if err != nil {
		return nil, err
	}
	claimID, err := inputs.StringOr("claim_id")
	if err != nil {
		return nil, err
	}
	if !util.IsHexAddress(borrower) {
		return nil, models.NewInvalidInputError("invalid borrower wallet address: %s", borrower)
	}

	claim, err := a.claims.GetClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	var fromDebtor, toCreditor []models.PaymentRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var ferr error
		fromDebtor, ferr = a.claims.GetClaimPayments(gctx, "", claim.Debtor)
		return ferr
	})
	g.Go(func() error {
		var ferr error
		toCreditor, ferr = a.claims.GetClaimPayments(gctx, claim.Creditor, "")
		return ferr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	common, err := pairedparty.Build(
		ctx,
		pairedparty.Receivable{
			TokenOwner: claim.TokenOwner,
			Payer:      claim.Debtor,
			Payee:      claim.Creditor,
			Amount:     claim.Amount,
			DueDate:    claim.DueDate,
		},
		append(fromDebtor, toCreditor...),
		a.chain,
		borrower,
		a.wallets,
		a.now(),
	)
	if err != nil {
		return nil, err
	}

	return Signals{
		Signals:                 common,
		InvoiceStatus:           claim.Status,
		PayerHasAcceptedInvoice: common.MutualPaid(),
	}, nil
}
