package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/dogesoundclub/slogan-deploy/internal/domain"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
)

// Backend is the chain access needed to deploy a contract and wait for it
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dialer opens a Backend for an RPC endpoint
type Dialer func(ctx context.Context, rpcURL string) (Backend, error)

// DialRPC connects to a JSON-RPC endpoint with ethclient
func DialRPC(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Client holds the connection to the selected network
type Client struct {
	dial    Dialer
	log     *slog.Logger
	mu      sync.Mutex
	backend Backend
	network *config.Network
	chainID uint64
}

// NewClient creates a client that connects lazily through dial
func NewClient(dial Dialer, log *slog.Logger) *Client {
	if dial == nil {
		dial = DialRPC
	}
	return &Client{dial: dial, log: log.With("component", "blockchain")}
}

// Connect dials the network and verifies it serves the configured chain.
// Connecting again to the same network is a no-op.
func (c *Client) Connect(ctx context.Context, network *config.Network) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil && c.network != nil && c.network.Name == network.Name {
		return nil
	}

	c.log.Debug("connecting", "network", network.Name, "rpc", network.RPCURL)
	backend, err := c.dial(ctx, network.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	remote, err := backend.ChainID(ctx)
	if err != nil {
		closeBackend(backend)
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	// A network without a chain ID takes whatever the endpoint reports
	switch {
	case network.ChainID == 0:
		c.chainID = remote.Uint64()
	case remote.Uint64() != network.ChainID:
		closeBackend(backend)
		return domain.ChainIDMismatchErr{
			Network:  network.Name,
			Expected: network.ChainID,
			Actual:   remote.Uint64(),
		}
	default:
		c.chainID = network.ChainID
	}

	c.backend = backend
	c.network = network
	c.log.Debug("connected", "network", network.Name, "chainId", c.chainID)
	return nil
}

// Backend returns the connected backend
func (c *Client) Backend() (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend == nil {
		return nil, domain.ErrNotConnected
	}
	return c.backend, nil
}

// ChainID returns the chain ID of the connected network
func (c *Client) ChainID() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chainID
}

// NetworkName returns the name of the connected network
func (c *Client) NetworkName() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.network == nil {
		return ""
	}
	return c.network.Name
}

// Close releases the RPC connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		closeBackend(c.backend)
		c.backend = nil
		c.network = nil
	}
}

func closeBackend(backend Backend) {
	if closer, ok := backend.(interface{ Close() }); ok {
		closer.Close()
	}
}
