//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/dogesoundclub/slogan-deploy/internal/adapters"
	"github.com/dogesoundclub/slogan-deploy/internal/config"
	"github.com/dogesoundclub/slogan-deploy/internal/logging"
	"github.com/dogesoundclub/slogan-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,
		adapters.ProvideProgressSink,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
