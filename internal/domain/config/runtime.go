package config

import (
	"time"
)

// DefaultContractName is the contract the deployer builds a factory for
const DefaultContractName = "DogeSoundClubSlogan"

// OutputFormat selects how the deployment result is printed
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Valid reports whether the format is one the renderer understands
func (f OutputFormat) Valid() bool {
	switch f {
	case OutputText, OutputJSON, OutputYAML:
		return true
	}
	return false
}

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	ArtifactsDir string // absolute

	// Deployment target
	ContractName string
	NetworkName  string // as selected; empty means the project default

	// Build settings
	CompileCommand string // empty disables compilation
	NoCompile      bool

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         OutputFormat
	Timeout        time.Duration

	// Config source tracking
	ConfigFile string // empty when the project has no deploy.toml

	// Resolved configurations
	ProjectConfig *ProjectConfig
}

// Network represents a resolved network
type Network struct {
	Name        string
	ChainID     uint64 // 0 means adopt whatever the RPC reports
	RPCURL      string
	ExplorerURL string
	Account     *AccountConfig
}

// AccountConfig is the deployer account for a network. Exactly one of
// PrivateKey or Mnemonic is expected to be set.
type AccountConfig struct {
	PrivateKey string //nolint:gosec // resolved from env, never written back
	Mnemonic   string
	HDPath     string
}

// Configured reports whether any key material is present
func (a *AccountConfig) Configured() bool {
	return a != nil && (a.PrivateKey != "" || a.Mnemonic != "")
}

// Kind describes where the account key comes from
func (a *AccountConfig) Kind() string {
	switch {
	case a == nil:
		return "none"
	case a.PrivateKey != "":
		return "private key"
	case a.Mnemonic != "":
		return "mnemonic"
	default:
		return "none"
	}
}
