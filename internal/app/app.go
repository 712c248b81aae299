package app

import (
	"log/slog"

	"github.com/dogesoundclub/slogan-deploy/internal/adapters/blockchain"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
	"github.com/dogesoundclub/slogan-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployContract *usecase.DeployContract
	ListNetworks   *usecase.ListNetworks

	client *blockchain.Client
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployContract *usecase.DeployContract,
	listNetworks *usecase.ListNetworks,
	client *blockchain.Client,
) *App {
	return &App{
		Config:         cfg,
		Log:            log,
		DeployContract: deployContract,
		ListNetworks:   listNetworks,
		client:         client,
	}
}

// Close releases the network connection, if one was opened
func (a *App) Close() {
	if a.client != nil {
		a.client.Close()
	}
}
