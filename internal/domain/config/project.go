package config

// ProjectConfig represents deploy.toml
type ProjectConfig struct {
	Contract       string                   `toml:"contract"`
	DefaultNetwork string                   `toml:"default_network"`
	Artifacts      string                   `toml:"artifacts"`
	CompileCommand *string                  `toml:"compile_command"` // nil means default, "" disables
	Timeout        string                   `toml:"timeout"`
	Networks       map[string]NetworkConfig `toml:"networks"`
}

// NetworkConfig represents a [networks.<name>] table
type NetworkConfig struct {
	URL        string `toml:"url"`
	ChainID    uint64 `toml:"chain_id"`
	Explorer   string `toml:"explorer,omitempty"`
	PrivateKey string `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Mnemonic   string `toml:"mnemonic,omitempty"`
	HDPath     string `toml:"hd_path,omitempty"`
}
