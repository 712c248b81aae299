package adapters

import (
	"log/slog"
	"os"

	"github.com/google/wire"
	"github.com/mattn/go-isatty"

	"github.com/dogesoundclub/slogan-deploy/internal/adapters/artifacts"
	"github.com/dogesoundclub/slogan-deploy/internal/adapters/blockchain"
	"github.com/dogesoundclub/slogan-deploy/internal/adapters/progress"
	internalconfig "github.com/dogesoundclub/slogan-deploy/internal/config"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
	"github.com/dogesoundclub/slogan-deploy/internal/usecase"
)

// ProvideArtifactRepository provides the artifact repository, compiling first
// unless compilation is disabled
func ProvideArtifactRepository(cfg *config.RuntimeConfig, log *slog.Logger) *artifacts.Repository {
	var builder artifacts.Builder
	if !cfg.NoCompile && cfg.CompileCommand != "" {
		builder = artifacts.NewCompiler(cfg.ProjectRoot, cfg.CompileCommand, log)
	}
	return artifacts.NewRepository(cfg.ProjectRoot, cfg.ArtifactsDir, builder, log)
}

// ProvideDialer provides the RPC dialer used by the chain client
func ProvideDialer() blockchain.Dialer {
	return blockchain.DialRPC
}

// ProvideProgressSink shows a spinner on interactive terminals only
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Debug {
		return progress.NewNopSink()
	}
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink(os.Stderr)
}

// ArtifactsSet provides artifact discovery
var ArtifactsSet = wire.NewSet(
	ProvideArtifactRepository,
	wire.Bind(new(blockchain.ArtifactSource), new(*artifacts.Repository)),
)

// BlockchainSet provides the chain client and the deploy toolkit
var BlockchainSet = wire.NewSet(
	ProvideDialer,
	blockchain.NewClient,
	blockchain.NewToolkit,
	wire.Bind(new(usecase.ContractFactoryProvider), new(*blockchain.Toolkit)),
	blockchain.NewConfirmer,
	wire.Bind(new(usecase.DeploymentConfirmer), new(*blockchain.Confirmer)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ArtifactsSet,
	BlockchainSet,
	ConfigSet,
)
