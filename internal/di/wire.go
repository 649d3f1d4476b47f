//go:build wireinject
// +build wireinject

package di

import (
	"MacroGold/pkg/config"
	"MacroGold/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
    wire.Build(
        // Observability
        ProvideLogger,
        ProvideMetrics,

        // Infrastructure clients
        ProvideFetcher,
        ProvideNotifier,
        ProvideTextCache,

        // Use cases
        ProvideAdapters,
        ProvideDigestRunner,

        // HTTP surface
        ProvideDigestHandler,

        // Application server
        ProvideApp,
    )
    return &server.App{}, nil
}
