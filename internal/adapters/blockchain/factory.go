package blockchain

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/dogesoundclub/slogan-deploy/internal/domain"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
	"github.com/dogesoundclub/slogan-deploy/internal/usecase"
)

// Factory deploys one compiled contract with a fixed signer
type Factory struct {
	name     string
	abi      abi.ABI
	bytecode []byte
	backend  bind.ContractBackend
	opts     *bind.TransactOpts
	log      *slog.Logger
}

// NewFactory parses the artifact ABI and creation code
func NewFactory(artifact *models.Artifact, backend bind.ContractBackend, opts *bind.TransactOpts, log *slog.Logger) (*Factory, error) {
	if artifact.Bytecode.Empty() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoBytecode, artifact.ContractName)
	}

	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI for %s: %w", artifact.ContractName, err)
	}

	return &Factory{
		name:     artifact.ContractName,
		abi:      parsed,
		bytecode: common.FromHex(artifact.Bytecode.Object),
		backend:  backend,
		opts:     opts,
		log:      log,
	}, nil
}

func (f *Factory) ContractName() string {
	return f.name
}

// Deploy packs args against the constructor and sends the creation
// transaction. Gas and nonce are filled in by the backend.
func (f *Factory) Deploy(ctx context.Context, args ...any) (*models.PendingDeployment, error) {
	opts := *f.opts
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(&opts, f.abi, f.bytecode, f.backend, args...)
	if err != nil {
		return nil, err
	}

	f.log.Debug("deployment submitted",
		"contract", f.name,
		"tx", tx.Hash().Hex(),
		"address", address.Hex(),
		"nonce", tx.Nonce(),
		"gas", tx.Gas())

	return &models.PendingDeployment{
		ContractName: f.name,
		Address:      address,
		TxHash:       tx.Hash(),
		Deployer:     opts.From,
		Nonce:        tx.Nonce(),
		Transaction:  tx,
	}, nil
}

var _ usecase.ContractFactory = (*Factory)(nil)
