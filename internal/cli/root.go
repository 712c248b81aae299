package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dogesoundclub/slogan-deploy/internal/app"
	"github.com/dogesoundclub/slogan-deploy/internal/cli/render"
	"github.com/dogesoundclub/slogan-deploy/internal/config"
	"github.com/dogesoundclub/slogan-deploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// initApp builds the app container from resolved flags and environment
var initApp = app.InitApp

// NewRootCmd creates the root command. Running it without a subcommand
// deploys the contract.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slogan-deploy",
		Short: "Deploy the DogeSoundClubSlogan contract",
		Long: `Compiles the project, deploys the DogeSoundClubSlogan contract with no
constructor arguments, waits for the deployment to be mined and prints its
address.

Networks and deployer accounts come from deploy.toml in the project root.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// The deploy run announces itself before any setup can fail
			if cmd == cmd.Root() {
				if err := render.NewDeploymentRenderer(cmd.OutOrStdout(), "").RenderStart(); err != nil {
					return err
				}
			}

			projectRoot, err := config.FindProjectRoot(".")
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := initApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
		RunE: runDeploy,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (defaults to default_network or localhost)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable the progress spinner")
	rootCmd.PersistentFlags().Bool("no-compile", false, "Use existing artifacts without compiling")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Minute, "Time limit for the whole deployment")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// runDeploy deploys once and prints the address
func runDeploy(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	renderer := render.NewDeploymentRenderer(cmd.OutOrStdout(), app.Config.Output)

	ctx := cmd.Context()
	if app.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.Config.Timeout)
		defer cancel()
	}

	result, err := app.DeployContract.Run(ctx, usecase.DeployContractParams{
		ContractName: app.Config.ContractName,
	})
	if err != nil {
		return err
	}

	return renderer.Render(result.Deployment)
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
