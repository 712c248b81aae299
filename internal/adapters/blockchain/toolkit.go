package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/dogesoundclub/slogan-deploy/internal/adapters/signer"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
	"github.com/dogesoundclub/slogan-deploy/internal/usecase"
)

// ArtifactSource looks up compiled contracts by name
type ArtifactSource interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// Toolkit ties artifacts, the network connection and the deployer account
// together into contract factories
type Toolkit struct {
	artifacts   ArtifactSource
	client      *Client
	networks    usecase.NetworkResolver
	networkName string
	log         *slog.Logger
}

// NewToolkit creates a toolkit for the selected network
func NewToolkit(artifacts ArtifactSource, client *Client, networks usecase.NetworkResolver, cfg *config.RuntimeConfig, log *slog.Logger) *Toolkit {
	return &Toolkit{
		artifacts:   artifacts,
		client:      client,
		networks:    networks,
		networkName: cfg.NetworkName,
		log:         log,
	}
}

// GetContractFactory resolves the network, compiles and loads the named
// contract, connects and prepares the deployer's signer
func (t *Toolkit) GetContractFactory(ctx context.Context, name string) (usecase.ContractFactory, error) {
	network, err := t.networks.ResolveNetwork(ctx, t.networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network: %w", err)
	}

	artifact, err := t.artifacts.GetArtifact(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := t.client.Connect(ctx, network); err != nil {
		return nil, err
	}

	backend, err := t.client.Backend()
	if err != nil {
		return nil, err
	}

	opts, err := signer.NewTransactor(network.Account, new(big.Int).SetUint64(t.client.ChainID()))
	if err != nil {
		return nil, err
	}

	t.log.Debug("contract factory ready",
		"contract", artifact.FullyQualifiedName(),
		"network", network.Name,
		"deployer", opts.From.Hex())

	factory, err := NewFactory(artifact, backend, opts, t.log)
	if err != nil {
		return nil, err
	}
	return factory, nil
}

var _ usecase.ContractFactoryProvider = (*Toolkit)(nil)
