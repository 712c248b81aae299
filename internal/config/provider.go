package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dogesoundclub/slogan-deploy/internal/domain/config"
)

const defaultTimeout = 5 * time.Minute

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot(".")
		if err != nil {
			return nil, err
		}
	}

	project, configFile, err := loadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		ContractName:   config.DefaultContractName,
		NetworkName:    v.GetString("network"),
		ArtifactsDir:   filepath.Join(projectRoot, "artifacts"),
		CompileCommand: DefaultCompileCommand,
		NoCompile:      v.GetBool("no_compile"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Output:         config.OutputFormat(strings.ToLower(v.GetString("output"))),
		Timeout:        defaultTimeout,
		ConfigFile:     configFile,
		ProjectConfig:  project,
	}

	if !cfg.Output.Valid() {
		return nil, fmt.Errorf("invalid output format %q (expected text, json or yaml)", cfg.Output)
	}

	if project.Contract != "" {
		cfg.ContractName = project.Contract
	}
	if project.Artifacts != "" {
		cfg.ArtifactsDir = project.Artifacts
		if !filepath.IsAbs(cfg.ArtifactsDir) {
			cfg.ArtifactsDir = filepath.Join(projectRoot, cfg.ArtifactsDir)
		}
	}
	if project.CompileCommand != nil {
		cfg.CompileCommand = *project.CompileCommand
	}

	// Flags and env take precedence over deploy.toml
	switch {
	case v.IsSet("timeout"):
		cfg.Timeout = v.GetDuration("timeout")
	case project.Timeout != "":
		timeout, err := time.ParseDuration(project.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q in %s: %w", project.Timeout, ProjectFile, err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("DEPLOY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("output", string(config.OutputText))
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("no_compile", false)
	v.SetDefault("project_root", projectRoot)

	bindFlags := func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	}
	cmd.Flags().VisitAll(bindFlags)

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectConfig)
}
