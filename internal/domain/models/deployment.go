package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PendingDeployment is a submitted deployment transaction that has not been
// confirmed yet. Address is the address the contract will have once mined.
type PendingDeployment struct {
	ContractName string
	Address      common.Address
	TxHash       common.Hash
	Deployer     common.Address
	Nonce        uint64
	Transaction  *types.Transaction
}

// Deployment is a confirmed contract creation
type Deployment struct {
	ContractName string
	Address      common.Address
	TxHash       common.Hash
	Deployer     common.Address
	BlockNumber  uint64
	GasUsed      uint64
	Network      string
	ChainID      uint64
}
