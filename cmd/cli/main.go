package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ChefStevePopp/ChefLife-sub003/cmd/cli/commands"
	"github.com/ChefStevePopp/ChefLife-sub003/internal/config"
	"github.com/ChefStevePopp/ChefLife-sub003/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cheflife",
		Short: "ChefLife attendance CLI - Reconcile schedule and time-clock exports",
		Long: `A CLI tool for reconciling scheduled shifts against worked shifts,
detecting attendance events, and staging them for manager review.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				app.Close()
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (test, prod, etc.)")

	rootCmd.AddCommand(commands.AnalyzeCmd(appRef()))
	rootCmd.AddCommand(commands.StageEventsCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef hands commands the context that initApp fills in before any RunE
// executes
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up the logger and configuration
func initApp() error {
	appRef()
	app.Ctx = context.Background()
	app.Env = env

	logger, err := logging.InitLogger(envOrDefault())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger

	app.Logger.Info("Starting application", zap.String("environment", envOrDefault()))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	return nil
}

func envOrDefault() string {
	if env == "" {
		return "default"
	}
	return env
}
