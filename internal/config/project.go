package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/dogesoundclub/slogan-deploy/internal/domain"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
)

// ProjectFile is the project configuration file name
const ProjectFile = "deploy.toml"

// DefaultCompileCommand builds the Hardhat artifacts
const DefaultCompileCommand = "npx hardhat compile"

// rootMarkers identify a project directory when walking up from the working directory
var rootMarkers = []string{
	ProjectFile,
	"hardhat.config.ts",
	"hardhat.config.js",
	"hardhat.config.cjs",
}

// loadDotEnv loads .env files from the project root so deploy.toml can
// reference secrets with ${VAR}. Variables already set in the process win.
func loadDotEnv(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectConfig loads and parses deploy.toml. A missing file yields an
// empty config so plain Hardhat projects work with the built-in networks.
func loadProjectConfig(projectRoot string) (*config.ProjectConfig, string, error) {
	loadDotEnv(projectRoot)

	path := filepath.Join(projectRoot, ProjectFile)
	cfg := &config.ProjectConfig{
		Networks: make(map[string]config.NetworkConfig),
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, "", nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}

	cfg.Contract = os.ExpandEnv(cfg.Contract)
	cfg.DefaultNetwork = os.ExpandEnv(cfg.DefaultNetwork)
	cfg.Artifacts = os.ExpandEnv(cfg.Artifacts)
	if cfg.CompileCommand != nil {
		expanded := os.ExpandEnv(*cfg.CompileCommand)
		cfg.CompileCommand = &expanded
	}

	for name, network := range cfg.Networks {
		network.URL = os.ExpandEnv(network.URL)
		network.Explorer = os.ExpandEnv(network.Explorer)
		network.PrivateKey = os.ExpandEnv(network.PrivateKey)
		network.Mnemonic = os.ExpandEnv(network.Mnemonic)
		network.HDPath = os.ExpandEnv(network.HDPath)
		cfg.Networks[name] = network
	}

	return cfg, path, nil
}

// FindProjectRoot walks up from dir to the first directory holding deploy.toml
// or a Hardhat config file
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s or hardhat.config found", domain.ErrProjectNotFound, ProjectFile)
		}
		dir = parent
	}
}
