//go:build wireinject
// +build wireinject

package di

import (
	"QuotePull/internal/service/yahoo"
	"QuotePull/pkg/config"
	xhttp "QuotePull/pkg/http"
	"QuotePull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Outbound
		ProvideHTTPClient,
		wire.Bind(new(yahoo.Doer), new(*xhttp.Client)),
		ProvideYahooConfig,
		ProvideYahooClient,
		ProvideQuoteService,

		// Inbound
		ProvideRateLimiter,
		ProvideQuotesHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
