package config

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/dogesoundclub/slogan-deploy/internal/domain"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
)

// builtinNetworks are available without a deploy.toml entry. Project
// networks with the same name override individual fields.
var builtinNetworks = map[string]config.NetworkConfig{
	"localhost": {URL: "http://127.0.0.1:8545", ChainID: 31337},
	"hardhat":   {URL: "http://127.0.0.1:8545", ChainID: 31337},
	"cypress":   {URL: "https://public-en-cypress.klaytn.net", ChainID: 8217},
	"baobab":    {URL: "https://public-en-baobab.klaytn.net", ChainID: 1001},
}

// NetworkResolver resolves network names to configurations
type NetworkResolver struct {
	networks       map[string]config.NetworkConfig
	defaultNetwork string
}

// NewNetworkResolver creates a resolver over the built-in and project networks
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	networks := make(map[string]config.NetworkConfig, len(builtinNetworks))
	for name, network := range builtinNetworks {
		networks[name] = network
	}

	r := &NetworkResolver{networks: networks}
	if project == nil {
		return r
	}

	r.defaultNetwork = project.DefaultNetwork
	for name, network := range project.Networks {
		networks[name] = mergeNetwork(networks[name], network)
	}
	return r
}

// mergeNetwork overlays the non-zero fields of override on base
func mergeNetwork(base, override config.NetworkConfig) config.NetworkConfig {
	if override.URL != "" {
		base.URL = override.URL
	}
	if override.ChainID != 0 {
		base.ChainID = override.ChainID
	}
	if override.Explorer != "" {
		base.Explorer = override.Explorer
	}
	if override.PrivateKey != "" || override.Mnemonic != "" {
		base.PrivateKey = override.PrivateKey
		base.Mnemonic = override.Mnemonic
		base.HDPath = override.HDPath
	}
	return base
}

// DefaultNetwork returns the network used when none is selected
func (r *NetworkResolver) DefaultNetwork() string {
	if r.defaultNetwork != "" {
		return r.defaultNetwork
	}
	return "localhost"
}

// GetNetworks returns all network names, sorted
func (r *NetworkResolver) GetNetworks(ctx context.Context) []string {
	names := lo.Keys(r.networks)
	sort.Strings(names)
	return names
}

// ResolveNetwork resolves a network name to its configuration
func (r *NetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	if name == "" {
		name = r.DefaultNetwork()
	}

	network, ok := r.networks[name]
	if !ok {
		network, ok = r.networks[strings.ToLower(name)]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", domain.ErrNetworkNotFound, name, strings.Join(r.GetNetworks(ctx), ", "))
	}

	if network.URL == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoRPCURL, name)
	}

	resolved := &config.Network{
		Name:        name,
		ChainID:     network.ChainID,
		RPCURL:      network.URL,
		ExplorerURL: network.Explorer,
	}
	if resolved.ExplorerURL == "" {
		resolved.ExplorerURL = explorerURL(network.ChainID)
	}

	if network.PrivateKey != "" || network.Mnemonic != "" {
		resolved.Account = &config.AccountConfig{
			PrivateKey: network.PrivateKey,
			Mnemonic:   network.Mnemonic,
			HDPath:     network.HDPath,
		}
	}

	return resolved, nil
}

// explorerURL returns a default block explorer for well-known chains
func explorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 8217:
		return "https://kaiascan.io"
	case 1001:
		return "https://kairos.kaiascan.io"
	case 137:
		return "https://polygonscan.com"
	case 56:
		return "https://bscscan.com"
	default:
		return ""
	}
}
