// Package cmd implements the vapor CLI commands.
//
// The root command carries the global flags; subcommands run a component
// manifest (run) or print the resolved configuration (config).
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath  string
	verbose     bool
	metrics     bool
	metricsAddr string
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "vapor",
		Short: "Vapor - component instance runtime",
		Long: `Vapor drives component instances through their lifecycle: creation,
setup, mount, reactive updates, emitted events and unmount.

Use "vapor <command> --help" for more information about a command.`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (default: vapor.yaml in the project root)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging and stack traces")
	rootCmd.PersistentFlags().BoolVar(&opts.metrics, "metrics", false, "print collected metrics after the command")
	rootCmd.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-addr", "", "after the command, serve metrics over HTTP on this address until interrupted")

	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))

	return rootCmd
}
