package signer

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	hdwallet "github.com/ethereum-optimism/go-ethereum-hdwallet"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/dogesoundclub/slogan-deploy/internal/domain"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
)

// DefaultHDPath is the first account of the standard Ethereum derivation path
const DefaultHDPath = "m/44'/60'/0'/0/0"

// PrivateKey returns the deployer key for an account, either parsed from
// hex or derived from a mnemonic
func PrivateKey(account *config.AccountConfig) (*ecdsa.PrivateKey, error) {
	if !account.Configured() {
		return nil, domain.ErrNoAccount
	}

	if account.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(account.PrivateKey), "0x"))
		if err != nil {
			return nil, fmt.Errorf("%w: private key: %v", domain.ErrInvalidAccount, err)
		}
		return key, nil
	}

	return fromMnemonic(account.Mnemonic, account.HDPath)
}

func fromMnemonic(mnemonic, hdPath string) (*ecdsa.PrivateKey, error) {
	if hdPath == "" {
		hdPath = DefaultHDPath
	}

	wallet, err := hdwallet.NewFromMnemonic(strings.TrimSpace(mnemonic))
	if err != nil {
		return nil, fmt.Errorf("%w: mnemonic: %v", domain.ErrInvalidAccount, err)
	}

	path, err := hdwallet.ParseDerivationPath(hdPath)
	if err != nil {
		return nil, fmt.Errorf("%w: hd path %s: %v", domain.ErrInvalidAccount, hdPath, err)
	}

	account, err := wallet.Derive(path, false)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to derive %s: %v", domain.ErrInvalidAccount, hdPath, err)
	}

	key, err := wallet.PrivateKey(account)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to derive %s: %v", domain.ErrInvalidAccount, hdPath, err)
	}
	return key, nil
}

// NewTransactor builds signing options for the account on the given chain
func NewTransactor(account *config.AccountConfig, chainID *big.Int) (*bind.TransactOpts, error) {
	key, err := PrivateKey(account)
	if err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	return opts, nil
}
