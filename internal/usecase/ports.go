package usecase

import (
	"context"

	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
)

// ContractFactoryProvider resolves a contract name to something that can
// deploy it. Implementations prepare the network connection and signer.
type ContractFactoryProvider interface {
	GetContractFactory(ctx context.Context, name string) (ContractFactory, error)
}

// ContractFactory submits deployment transactions for one compiled contract
type ContractFactory interface {
	ContractName() string
	// Deploy submits a single deployment transaction and returns without
	// waiting for it to be mined.
	Deploy(ctx context.Context, args ...any) (*models.PendingDeployment, error)
}

// DeploymentConfirmer waits for a submitted deployment to be mined
type DeploymentConfirmer interface {
	WaitDeployed(ctx context.Context, pending *models.PendingDeployment) (*models.Deployment, error)
}

// NetworkResolver lists and resolves configured networks
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*config.Network, error)
	DefaultNetwork() string
}

// Progress tracking interfaces

// DeployStage identifies a step of the deploy flow
type DeployStage string

const (
	StageResolving  DeployStage = "resolving"
	StageDeploying  DeployStage = "deploying"
	StageConfirming DeployStage = "confirming"
	StageCompleted  DeployStage = "completed"
	StageFailed     DeployStage = "failed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
