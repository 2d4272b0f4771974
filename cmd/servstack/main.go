// Package main implements the servstack CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"servstack/internal/config"
	"servstack/internal/shell"
	"servstack/internal/stack"
	"servstack/internal/ui"
)

var (
	// Global flags
	verbose   bool
	workspace string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "servstack",
	Short: "servstack - manage locally-deployed service containers",
	Long: `servstack manages a stack of service containers whose sources live as
subdirectories of one upstream repository.

It keeps a sparse checkout of the upstream limited to the services you have
added, generates a docker compose manifest for them, and drives docker compose
to start and stop their containers.

State lives in the workspace: .servstack/state.json tracks added services,
.servstack/servers/ holds the sparse mirror, and docker-compose.yml is the
generated manifest.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newStack builds the command engine for the selected workspace.
func newStack(cmd *cobra.Command) (*stack.Stack, error) {
	ws := workspace
	if ws == "" {
		var err error
		ws, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}

	cfg, err := config.Load(ws)
	if err != nil {
		return nil, err
	}

	runner := shell.NewLocalRunner(logger)
	printer := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return stack.New(cfg, runner, logger, printer), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace root (default: current directory)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		ui.NewPrinter(os.Stdout, os.Stderr).Errorf("%v", err)
		os.Exit(1)
	}
}
