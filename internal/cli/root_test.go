package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogesoundclub/slogan-deploy/internal/app"
	"github.com/dogesoundclub/slogan-deploy/internal/config"
	"github.com/dogesoundclub/slogan-deploy/internal/domain"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
	"github.com/dogesoundclub/slogan-deploy/internal/usecase"
)

var sloganAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

type stubFactory struct {
	err   error
	calls int
}

func (f *stubFactory) ContractName() string { return "DogeSoundClubSlogan" }

func (f *stubFactory) Deploy(ctx context.Context, args ...any) (*models.PendingDeployment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.PendingDeployment{
		ContractName: "DogeSoundClubSlogan",
		Address:      sloganAddress,
		TxHash:       common.HexToHash("0x01"),
	}, nil
}

// stubToolkit resolves the selected network like the real toolkit but
// hands out a stub factory instead of touching a chain
type stubToolkit struct {
	factory     *stubFactory
	err         error
	networks    usecase.NetworkResolver
	networkName string
	names       []string
}

func (s *stubToolkit) GetContractFactory(ctx context.Context, name string) (usecase.ContractFactory, error) {
	s.names = append(s.names, name)
	if _, err := s.networks.ResolveNetwork(ctx, s.networkName); err != nil {
		return nil, fmt.Errorf("failed to resolve network: %w", err)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.factory, nil
}

type stubConfirmer struct {
	err error
}

func (c *stubConfirmer) WaitDeployed(ctx context.Context, pending *models.PendingDeployment) (*models.Deployment, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &models.Deployment{
		ContractName: pending.ContractName,
		Address:      pending.Address,
		TxHash:       pending.TxHash,
		BlockNumber:  1,
		Network:      "localhost",
		ChainID:      31337,
	}, nil
}

type harness struct {
	toolkit   *stubToolkit
	confirmer *stubConfirmer
	stdout    bytes.Buffer
	stderr    bytes.Buffer
}

// newHarness runs commands inside a fresh project with stubbed chain access
func newHarness(t *testing.T, projectFile string) *harness {
	t.Helper()

	dir := t.TempDir()
	if projectFile != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "deploy.toml"), []byte(projectFile), 0o644))
	}
	t.Chdir(dir)

	h := &harness{
		toolkit:   &stubToolkit{factory: &stubFactory{}},
		confirmer: &stubConfirmer{},
	}

	prev := initApp
	initApp = func(v *viper.Viper) (*app.App, error) {
		cfg, err := config.Provider(v)
		if err != nil {
			return nil, err
		}
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		h.toolkit.networks = config.ProvideNetworkResolver(cfg)
		h.toolkit.networkName = cfg.NetworkName
		return app.NewApp(
			cfg,
			log,
			usecase.NewDeployContract(h.toolkit, h.confirmer, usecase.NopProgress{}, log),
			usecase.NewListNetworks(config.ProvideNetworkResolver(cfg)),
			nil,
		), nil
	}
	t.Cleanup(func() { initApp = prev })

	return h
}

func (h *harness) run(args ...string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&h.stdout)
	cmd.SetErr(&h.stderr)
	return Execute(context.Background(), cmd, &h.stderr)
}

const projectFile = `
[networks.localhost]
private_key = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
`

func TestDeploy_Success(t *testing.T) {
	h := newHarness(t, projectFile)

	code := h.run("--no-compile")

	assert.Equal(t, 0, code)
	assert.Equal(t, "deploy start\nDogeSoundClubSlogan address: "+sloganAddress.Hex()+"\n", h.stdout.String())
	assert.Empty(t, h.stderr.String())
	assert.Equal(t, []string{"DogeSoundClubSlogan"}, h.toolkit.names)
	assert.Equal(t, 1, h.toolkit.factory.calls)
}

func TestDeploy_JSONOutput(t *testing.T) {
	h := newHarness(t, projectFile)

	code := h.run("--no-compile", "-o", "json")
	require.Equal(t, 0, code, h.stderr.String())

	out := h.stdout.String()
	require.True(t, len(out) > len("deploy start\n"))
	assert.Equal(t, "deploy start\n", out[:len("deploy start\n")])

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(out[len("deploy start\n"):]), &record))
	assert.Equal(t, sloganAddress.Hex(), record["address"])
	assert.Equal(t, "localhost", record["network"])
}

func TestDeploy_SubmitFailure(t *testing.T) {
	h := newHarness(t, projectFile)
	h.toolkit.factory.err = errors.New("insufficient funds for gas")

	code := h.run("--no-compile")

	assert.Equal(t, 1, code)
	assert.Equal(t, "deploy start\n", h.stdout.String())
	assert.Equal(t, "Error: failed to deploy DogeSoundClubSlogan: insufficient funds for gas\n", h.stderr.String())
	assert.Equal(t, 1, h.toolkit.factory.calls)
}

func TestDeploy_ConfirmationFailure(t *testing.T) {
	h := newHarness(t, projectFile)
	h.confirmer.err = domain.ErrDeploymentReverted

	code := h.run("--no-compile")

	assert.Equal(t, 1, code)
	assert.NotContains(t, h.stdout.String(), "address:")
	assert.Contains(t, h.stderr.String(), "deployment transaction reverted")
	assert.Equal(t, 1, h.toolkit.factory.calls)
}

func TestDeploy_FactoryFailure(t *testing.T) {
	h := newHarness(t, projectFile)
	h.toolkit.err = domain.ErrContractNotFound

	code := h.run("--no-compile")

	assert.Equal(t, 1, code)
	assert.Equal(t, "deploy start\n", h.stdout.String())
	assert.Equal(t, "Error: failed to get contract factory for DogeSoundClubSlogan: contract not found\n", h.stderr.String())
	assert.Zero(t, h.toolkit.factory.calls)
}

func TestDeploy_ConfigErrors(t *testing.T) {
	tests := []struct {
		name        string
		projectFile string
		args        []string
		wantStdout  string
		wantErr     string
	}{
		{
			name:        "unknown network",
			projectFile: projectFile,
			args:        []string{"--network", "nowhere"},
			wantStdout:  "deploy start\n",
			wantErr:     "Error: failed to get contract factory for DogeSoundClubSlogan: failed to resolve network: network not found: nowhere",
		},
		{
			name:        "unknown default network",
			projectFile: "default_network = \"nowhere\"\n",
			wantStdout:  "deploy start\n",
			wantErr:     "network not found: nowhere",
		},
		{
			name:        "invalid output",
			projectFile: projectFile,
			args:        []string{"-o", "xml"},
			wantStdout:  "deploy start\n",
			wantErr:     `Error: failed to initialize app: invalid output format "xml"`,
		},
		{
			name:        "positional arguments",
			projectFile: projectFile,
			args:        []string{"extra"},
			wantErr:     "Error: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.projectFile)

			code := h.run(tt.args...)

			assert.Equal(t, 1, code)
			assert.Equal(t, tt.wantStdout, h.stdout.String())
			assert.Contains(t, h.stderr.String(), tt.wantErr)
			assert.Zero(t, h.toolkit.factory.calls)
		})
	}
}

func TestDeploy_NoProject(t *testing.T) {
	h := newHarness(t, "")

	code := h.run()

	assert.Equal(t, 1, code)
	assert.Equal(t, "deploy start\n", h.stdout.String())
	assert.Contains(t, h.stderr.String(), "project not found")
	assert.Zero(t, h.toolkit.factory.calls)
}

func TestNetworksCmd(t *testing.T) {
	h := newHarness(t, projectFile+`
[networks.staging]
url = "https://rpc.example.com/secret"
chain_id = 1001
`)

	code := h.run("networks")

	require.Equal(t, 0, code, h.stderr.String())
	out := h.stdout.String()
	assert.Contains(t, out, "localhost *")
	assert.Contains(t, out, "staging")
	assert.Contains(t, out, "https://rpc.example.com/***")
	assert.Zero(t, h.toolkit.factory.calls)
}

func TestNetworksCmd_UnknownDefault(t *testing.T) {
	h := newHarness(t, `
default_network = "nowhere"

[networks.broken]
chain_id = 5
`)

	code := h.run("networks")

	require.Equal(t, 0, code, h.stderr.String())
	out := h.stdout.String()
	assert.NotContains(t, out, "deploy start")
	assert.Contains(t, out, "localhost")
	assert.Contains(t, out, "error: network has no RPC URL: broken")
	assert.Empty(t, h.stderr.String())
}

func TestVersionCmd(t *testing.T) {
	h := newHarness(t, "")

	code := h.run("version")

	assert.Equal(t, 0, code)
	assert.Contains(t, h.stdout.String(), "slogan-deploy version dev")
}
