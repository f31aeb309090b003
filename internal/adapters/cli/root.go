// Package cli wires the optimizer-cli commands: a one-shot solve path and a
// foreground worker, both sharing the same config/logging/engine
// construction the daemon entry point uses.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// NewRootCommand creates the root command for the CLI.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "optimizer-cli",
		Short: "Mission supply optimizer - solve jobs and run the queue worker",
		Long: `optimizer-cli runs the mission-supply MILP pipeline directly.

Examples:
  optimizer-cli solve --input job.json
  cat job.json | optimizer-cli solve
  optimizer-cli worker`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a config file (defaults to ./config.yaml, env vars, then built-in defaults)")

	rootCmd.AddCommand(NewSolveCommand())
	rootCmd.AddCommand(NewWorkerCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
