//go:build wireinject
// +build wireinject

package di

import (
	"CreditPull/pkg/config"
	"CreditPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideChain,
		ProvideMetrics,

		// Infrastructure clients
		ProvideSignalPublisher,
		ProvideCacheService,
		ProvideTransactionSource,

		// Adapters
		ProvideWalletAdapter,
		ProvideAdapters,

		// Registry and HTTP
		ProvideRegistry,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
