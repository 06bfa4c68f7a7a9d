package requestnetwork

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

const adapterName = "request_network"

// Adapter computes invoice and payment-history signals for a Request
// receivable. Wallet tenure comes from the wallet adapter for the configured
// chain, injected as a provider rather than constructed here.
type Adapter struct {
	chain    models.Chain
	invoices repository.InvoiceSource
	payments repository.PaymentSource
	wallets  wallet.Provider
	now      func() time.Time
}

func New(chain models.Chain, invoices repository.InvoiceSource, payments repository.PaymentSource, wallets wallet.Provider) *Adapter {
	return &Adapter{
		chain:    chain,
		invoices: invoices,
		payments: payments,
		wallets:  wallets,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (a *Adapter) Definition() adapter.Definition {
	return adapter.Definition{
		Name:           adapterName,
		RequiredInputs: []string{"borrower_wallet_address", "receivable_param"},
		Signals:        pairedparty.SignalNames(),
	}
}

// Fetch resolves the receivable, unions the payer's outgoing and the payee's
// incoming payment history, and assembles the paired-party record. The two
// payment queries run concurrently; either failing fails the fetch.
func (a *Adapter) Fetch(ctx context.Context, inputs adapter.Inputs) (adapter.Record, error) {
	borrower, err := inputs.String("borrower_wallet_address")
	if err != nil {
		return nil, err
	}
	receivableID, err := inputs.StringOr("receivable_param")
	if err != nil {
		return nil, err
	}
	if !util.IsHexAddress(borrower) {
		return nil, models.NewInvalidInputError("invalid borrower wallet address: %s", borrower)
	}

	invoice, err := a.invoices.GetInvoice(ctx, receivableID)
	if err != nil {
		return nil, err
	}

	var fromPayer, toPayee []models.PaymentRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var ferr error
		fromPayer, ferr = a.payments.GetPayments(gctx, invoice.Payer, "")
		return ferr
	})
	g.Go(func() error {
		var ferr error
		toPayee, ferr = a.payments.GetPayments(gctx, "", invoice.Payee)
		return ferr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	signals, err := pairedparty.Build(
		ctx,
		pairedparty.Receivable{
			TokenOwner: invoice.TokenOwner,
			Payer:      invoice.Payer,
			Payee:      invoice.Payee,
			Amount:     invoice.Amount,
			DueDate:    invoice.DueDate,
		},
		append(fromPayer, toPayee...),
		a.chain,
		borrower,
		a.wallets,
		a.now(),
	)
	if err != nil {
		return nil, err
	}
	return signals, nil
}
