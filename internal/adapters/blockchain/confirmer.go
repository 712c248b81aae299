package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/dogesoundclub/slogan-deploy/internal/domain"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
	"github.com/dogesoundclub/slogan-deploy/internal/usecase"
)

// Confirmer waits for deployment transactions on the connected network
type Confirmer struct {
	client *Client
	log    *slog.Logger
}

// NewConfirmer creates a confirmer that shares the client's connection
func NewConfirmer(client *Client, log *slog.Logger) *Confirmer {
	return &Confirmer{client: client, log: log}
}

// WaitDeployed blocks until the transaction is mined, then checks that it
// succeeded and left code at the contract address
func (c *Confirmer) WaitDeployed(ctx context.Context, pending *models.PendingDeployment) (*models.Deployment, error) {
	if pending == nil || pending.Transaction == nil {
		return nil, errors.New("no deployment transaction to wait for")
	}

	backend, err := c.client.Backend()
	if err != nil {
		return nil, err
	}

	c.log.Debug("waiting for deployment", "tx", pending.TxHash.Hex())
	receipt, err := bind.WaitMined(ctx, backend, pending.Transaction)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: block %s", domain.ErrDeploymentReverted, receipt.BlockNumber)
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = pending.Address
	}

	code, err := backend.CodeAt(ctx, address, receipt.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check code: %w", err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoCodeAtAddress, address.Hex())
	}

	deployment := &models.Deployment{
		ContractName: pending.ContractName,
		Address:      address,
		TxHash:       receipt.TxHash,
		Deployer:     pending.Deployer,
		BlockNumber:  receipt.BlockNumber.Uint64(),
		GasUsed:      receipt.GasUsed,
		Network:      c.client.NetworkName(),
		ChainID:      c.client.ChainID(),
	}

	c.log.Debug("deployment confirmed",
		"contract", deployment.ContractName,
		"address", deployment.Address.Hex(),
		"block", deployment.BlockNumber,
		"gasUsed", deployment.GasUsed)

	return deployment, nil
}

var _ usecase.DeploymentConfirmer = (*Confirmer)(nil)
