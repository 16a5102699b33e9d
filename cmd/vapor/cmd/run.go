package cmd

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-drift/vapor/cmd/vapor/internal/manifest"
)

func newRunCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <manifest.yaml>",
		Short: "Run a component manifest",
		Long: `Run loads component definitions and a mount list from a manifest,
creates the instances (parents before children), mounts them, applies the
scripted steps and unmounts everything in reverse order.

Every lifecycle hook, render and emitted event is printed as a trace line.`,
		Example: `  # Run a manifest
  vapor run app.yaml

  # Run with debug logging and print metrics afterwards
  vapor run -v --metrics app.yaml

  # Run, then serve metrics on :9090 until interrupted
  vapor run --metrics-addr :9090 app.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(opts)
			if err != nil {
				return err
			}
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			rt, err := startRuntime(cfg, opts.verbose)
			if err != nil {
				return err
			}
			defer rt.close()

			rt.logger.Debug("running manifest",
				zap.String("path", args[0]),
				zap.Int("components", len(m.Components)),
				zap.Int("instances", len(m.Instances)),
				zap.Int("steps", len(m.Steps)),
				zap.Bool("debug", cfg.Debug))

			out := cmd.OutOrStdout()
			if err := m.Run(out); err != nil {
				return err
			}

			if opts.metrics {
				fmt.Fprintln(out)
				if err := rt.metrics.WriteText(out); err != nil {
					return err
				}
			}
			if opts.metricsAddr != "" {
				ln, err := net.Listen("tcp", opts.metricsAddr)
				if err != nil {
					return fmt.Errorf("failed to listen on %s: %w", opts.metricsAddr, err)
				}
				return serveMetrics(cmd.Context(), ln, rt.metrics.Handler(), rt.logger)
			}
			return nil
		},
	}
}
