package blockchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogesoundclub/slogan-deploy/internal/domain"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
)

const (
	deployerKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

	// Returns a contract whose code answers every call with 42
	creationCode = "0x600a600c600039600a6000f3602a60005260206000f3"
	runtimeCode  = "0x602a60005260206000f3"

	// Deploys successfully but leaves no code behind
	emptyCreationCode = "0x00"

	// REVERT(0, 0)
	revertingCode = "0x60006000fd"

	simulatedChainID = 1337
)

var deployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSimulatedBackend(t *testing.T) *simulated.Backend {
	t.Helper()
	balance := new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18))
	sim := simulated.NewBackend(types.GenesisAlloc{
		deployer: {Balance: balance},
	})
	t.Cleanup(func() { _ = sim.Close() })
	return sim
}

func simulatedDialer(sim *simulated.Backend) Dialer {
	return func(ctx context.Context, rpcURL string) (Backend, error) {
		return sim.Client(), nil
	}
}

func testNetwork(chainID uint64) *config.Network {
	return &config.Network{
		Name:    "simulated",
		ChainID: chainID,
		RPCURL:  "http://127.0.0.1:8545",
		Account: &config.AccountConfig{PrivateKey: "0x" + deployerKey},
	}
}

func testArtifact(bytecode string) *models.Artifact {
	return &models.Artifact{
		ContractName: "DogeSoundClubSlogan",
		SourceName:   "contracts/DogeSoundClubSlogan.sol",
		ABI:          json.RawMessage(`[]`),
		Bytecode:     models.Bytecode{Object: bytecode},
	}
}

func transactor(t *testing.T) *bind.TransactOpts {
	t.Helper()
	key, err := crypto.HexToECDSA(deployerKey)
	require.NoError(t, err)
	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(simulatedChainID))
	require.NoError(t, err)
	return opts
}

func connectedClient(t *testing.T, sim *simulated.Backend) *Client {
	t.Helper()
	client := NewClient(simulatedDialer(sim), testLogger())
	require.NoError(t, client.Connect(context.Background(), testNetwork(simulatedChainID)))
	return client
}

func TestClient_Connect(t *testing.T) {
	sim := newSimulatedBackend(t)

	t.Run("matching chain ID", func(t *testing.T) {
		client := NewClient(simulatedDialer(sim), testLogger())
		require.NoError(t, client.Connect(context.Background(), testNetwork(simulatedChainID)))
		assert.Equal(t, uint64(simulatedChainID), client.ChainID())
		assert.Equal(t, "simulated", client.NetworkName())

		backend, err := client.Backend()
		require.NoError(t, err)
		assert.NotNil(t, backend)
	})

	t.Run("adopts remote chain ID", func(t *testing.T) {
		client := NewClient(simulatedDialer(sim), testLogger())
		require.NoError(t, client.Connect(context.Background(), testNetwork(0)))
		assert.Equal(t, uint64(simulatedChainID), client.ChainID())
	})

	t.Run("chain ID mismatch", func(t *testing.T) {
		client := NewClient(simulatedDialer(sim), testLogger())
		err := client.Connect(context.Background(), testNetwork(31337))

		var mismatch domain.ChainIDMismatchErr
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, uint64(31337), mismatch.Expected)
		assert.Equal(t, uint64(simulatedChainID), mismatch.Actual)

		_, err = client.Backend()
		assert.ErrorIs(t, err, domain.ErrNotConnected)
	})

	t.Run("dial failure", func(t *testing.T) {
		client := NewClient(func(context.Context, string) (Backend, error) {
			return nil, errors.New("connection refused")
		}, testLogger())
		err := client.Connect(context.Background(), testNetwork(simulatedChainID))
		assert.ErrorContains(t, err, "failed to connect to RPC: connection refused")
	})
}

func TestDeployAndConfirm(t *testing.T) {
	sim := newSimulatedBackend(t)
	client := connectedClient(t, sim)
	backend, err := client.Backend()
	require.NoError(t, err)

	factory, err := NewFactory(testArtifact(creationCode), backend, transactor(t), testLogger())
	require.NoError(t, err)
	assert.Equal(t, "DogeSoundClubSlogan", factory.ContractName())

	ctx := context.Background()
	pending, err := factory.Deploy(ctx)
	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(deployer, 0), pending.Address)
	assert.Equal(t, deployer, pending.Deployer)
	assert.Equal(t, uint64(0), pending.Nonce)

	sim.Commit()

	deployment, err := NewConfirmer(client, testLogger()).WaitDeployed(ctx, pending)
	require.NoError(t, err)
	assert.Equal(t, pending.Address, deployment.Address)
	assert.Equal(t, pending.TxHash, deployment.TxHash)
	assert.Equal(t, "simulated", deployment.Network)
	assert.Equal(t, uint64(simulatedChainID), deployment.ChainID)
	assert.Equal(t, uint64(1), deployment.BlockNumber)
	assert.NotZero(t, deployment.GasUsed)

	code, err := backend.CodeAt(ctx, deployment.Address, nil)
	require.NoError(t, err)
	assert.Equal(t, common.FromHex(runtimeCode), code)
}

func TestConfirmer_Failures(t *testing.T) {
	t.Run("reverted", func(t *testing.T) {
		sim := newSimulatedBackend(t)
		client := connectedClient(t, sim)
		backend, err := client.Backend()
		require.NoError(t, err)

		// Estimation would reject a reverting constructor up front
		opts := transactor(t)
		opts.GasLimit = 100_000

		factory, err := NewFactory(testArtifact(revertingCode), backend, opts, testLogger())
		require.NoError(t, err)
		pending, err := factory.Deploy(context.Background())
		require.NoError(t, err)
		sim.Commit()

		_, err = NewConfirmer(client, testLogger()).WaitDeployed(context.Background(), pending)
		assert.ErrorIs(t, err, domain.ErrDeploymentReverted)
	})

	t.Run("no code", func(t *testing.T) {
		sim := newSimulatedBackend(t)
		client := connectedClient(t, sim)
		backend, err := client.Backend()
		require.NoError(t, err)

		factory, err := NewFactory(testArtifact(emptyCreationCode), backend, transactor(t), testLogger())
		require.NoError(t, err)
		pending, err := factory.Deploy(context.Background())
		require.NoError(t, err)
		sim.Commit()

		_, err = NewConfirmer(client, testLogger()).WaitDeployed(context.Background(), pending)
		assert.ErrorIs(t, err, domain.ErrNoCodeAtAddress)
	})

	t.Run("not connected", func(t *testing.T) {
		confirmer := NewConfirmer(NewClient(nil, testLogger()), testLogger())
		tx := types.NewTx(&types.LegacyTx{})
		_, err := confirmer.WaitDeployed(context.Background(), &models.PendingDeployment{Transaction: tx})
		assert.ErrorIs(t, err, domain.ErrNotConnected)
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		sim := newSimulatedBackend(t)
		client := connectedClient(t, sim)
		backend, err := client.Backend()
		require.NoError(t, err)

		factory, err := NewFactory(testArtifact(creationCode), backend, transactor(t), testLogger())
		require.NoError(t, err)
		pending, err := factory.Deploy(context.Background())
		require.NoError(t, err)

		// Never committed, so the receipt never shows up
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = NewConfirmer(client, testLogger()).WaitDeployed(ctx, pending)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewFactory_Errors(t *testing.T) {
	sim := newSimulatedBackend(t)

	_, err := NewFactory(testArtifact("0x"), sim.Client(), transactor(t), testLogger())
	assert.ErrorIs(t, err, domain.ErrNoBytecode)

	artifact := testArtifact(creationCode)
	artifact.ABI = json.RawMessage(`{not json`)
	_, err = NewFactory(artifact, sim.Client(), transactor(t), testLogger())
	assert.ErrorContains(t, err, "failed to parse ABI for DogeSoundClubSlogan")
}

type stubArtifacts struct {
	artifact *models.Artifact
	err      error
	calls    []string
}

func (s *stubArtifacts) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	s.calls = append(s.calls, name)
	return s.artifact, s.err
}

type stubNetworks struct {
	network *config.Network
	names   []string
}

func (s *stubNetworks) GetNetworks(ctx context.Context) []string { return []string{"simulated"} }

func (s *stubNetworks) DefaultNetwork() string { return "simulated" }

func (s *stubNetworks) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	s.names = append(s.names, name)
	if s.network == nil || (name != "" && name != s.network.Name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNetworkNotFound, name)
	}
	return s.network, nil
}

func TestToolkit_GetContractFactory(t *testing.T) {
	t.Run("deploys with the network account", func(t *testing.T) {
		sim := newSimulatedBackend(t)
		client := NewClient(simulatedDialer(sim), testLogger())
		artifacts := &stubArtifacts{artifact: testArtifact(creationCode)}
		networks := &stubNetworks{network: testNetwork(simulatedChainID)}
		cfg := &config.RuntimeConfig{NetworkName: "simulated"}

		toolkit := NewToolkit(artifacts, client, networks, cfg, testLogger())
		factory, err := toolkit.GetContractFactory(context.Background(), "DogeSoundClubSlogan")
		require.NoError(t, err)
		assert.Equal(t, []string{"DogeSoundClubSlogan"}, artifacts.calls)
		assert.Equal(t, []string{"simulated"}, networks.names)

		pending, err := factory.Deploy(context.Background())
		require.NoError(t, err)
		assert.Equal(t, deployer, pending.Deployer)
	})

	t.Run("unknown network fails before compiling", func(t *testing.T) {
		sim := newSimulatedBackend(t)
		client := NewClient(simulatedDialer(sim), testLogger())
		artifacts := &stubArtifacts{artifact: testArtifact(creationCode)}
		networks := &stubNetworks{network: testNetwork(simulatedChainID)}
		cfg := &config.RuntimeConfig{NetworkName: "nowhere"}

		_, err := NewToolkit(artifacts, client, networks, cfg, testLogger()).
			GetContractFactory(context.Background(), "DogeSoundClubSlogan")
		assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
		assert.ErrorContains(t, err, "failed to resolve network")
		assert.Empty(t, artifacts.calls)

		_, err = client.Backend()
		assert.ErrorIs(t, err, domain.ErrNotConnected)
	})

	t.Run("artifact error", func(t *testing.T) {
		sim := newSimulatedBackend(t)
		client := NewClient(simulatedDialer(sim), testLogger())
		artifacts := &stubArtifacts{err: domain.ErrContractNotFound}
		networks := &stubNetworks{network: testNetwork(simulatedChainID)}

		_, err := NewToolkit(artifacts, client, networks, &config.RuntimeConfig{}, testLogger()).
			GetContractFactory(context.Background(), "Missing")
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
	})

	t.Run("no account", func(t *testing.T) {
		sim := newSimulatedBackend(t)
		client := NewClient(simulatedDialer(sim), testLogger())
		network := testNetwork(simulatedChainID)
		network.Account = nil
		networks := &stubNetworks{network: network}

		_, err := NewToolkit(&stubArtifacts{artifact: testArtifact(creationCode)}, client, networks, &config.RuntimeConfig{}, testLogger()).
			GetContractFactory(context.Background(), "DogeSoundClubSlogan")
		assert.ErrorIs(t, err, domain.ErrNoAccount)
	})
}
