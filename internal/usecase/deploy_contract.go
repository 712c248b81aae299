package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
)

// DeployContractParams contains parameters for deploying a contract
type DeployContractParams struct {
	ContractName string
	Args         []any // constructor arguments
}

// DeployContractResult contains the confirmed deployment
type DeployContractResult struct {
	Deployment *models.Deployment
}

// DeployContract resolves a contract factory, submits one deployment
// transaction and waits for it to be mined. It never retries.
type DeployContract struct {
	factories ContractFactoryProvider
	confirmer DeploymentConfirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	factories ContractFactoryProvider,
	confirmer DeploymentConfirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		factories: factories,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// Run executes the deployment
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	result, err := uc.run(ctx, params)
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageFailed)})
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted)})
	return result, nil
}

func (uc *DeployContract) run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	// Stage 1: Resolve factory
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageResolving),
		Message: fmt.Sprintf("Resolving %s", params.ContractName),
		Spinner: true,
	})

	factory, err := uc.factories.GetContractFactory(ctx, params.ContractName)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract factory for %s: %w", params.ContractName, err)
	}

	// Stage 2: Submit deployment
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageDeploying),
		Message: fmt.Sprintf("Deploying %s", factory.ContractName()),
		Spinner: true,
	})

	pending, err := factory.Deploy(ctx, params.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", factory.ContractName(), err)
	}

	uc.log.Debug("deployment submitted",
		"contract", pending.ContractName,
		"tx", pending.TxHash.Hex(),
		"deployer", pending.Deployer.Hex(),
		"nonce", pending.Nonce,
	)

	// Stage 3: Wait for confirmation
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    string(StageConfirming),
		Message:  fmt.Sprintf("Waiting for %s to be mined", pending.TxHash.Hex()),
		Spinner:  true,
		Metadata: pending,
	})

	deployment, err := uc.confirmer.WaitDeployed(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("deployment of %s in tx %s failed: %w", factory.ContractName(), pending.TxHash.Hex(), err)
	}

	uc.log.Debug("deployment confirmed",
		"contract", deployment.ContractName,
		"address", deployment.Address.Hex(),
		"block", deployment.BlockNumber,
		"gasUsed", deployment.GasUsed,
	)

	return &DeployContractResult{Deployment: deployment}, nil
}
