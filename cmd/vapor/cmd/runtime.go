package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-drift/vapor/cmd/vapor/internal/config"
	"github.com/go-drift/vapor/pkg/component"
	"github.com/go-drift/vapor/pkg/errors"
	"github.com/go-drift/vapor/pkg/telemetry"
)

// resolveConfig finds the project root and resolves vapor.yaml against it.
func resolveConfig(opts *globalOptions) (*config.Resolved, error) {
	root, err := config.FindProjectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(root, opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.metrics || opts.metricsAddr != "" {
		cfg.MetricsEnabled = true
	}
	return cfg, nil
}

// newLogger builds the zap logger described by cfg.
func newLogger(cfg *config.Resolved, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.LogDevelopment {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zcfg.Level = level
	return zcfg.Build()
}

// runtime wires the component package to a logger, the error handler and
// a metrics collector. close undoes the wiring.
type runtime struct {
	logger    *zap.Logger
	metrics   *telemetry.Metrics
	prevDebug bool
}

func startRuntime(cfg *config.Resolved, verbose bool) (*runtime, error) {
	logger, err := newLogger(cfg, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	metrics, err := telemetry.NewMetrics(telemetry.MetricsConfig{
		Enabled:   cfg.MetricsEnabled,
		Namespace: cfg.MetricsNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	prevDebug := component.DebugMode
	component.SetLogger(logger.Named("component"))
	component.SetDebugMode(cfg.Debug)
	errors.SetHandler(&errors.LogHandler{Logger: logger.Named("errors"), Verbose: verbose})
	if metrics.Enabled() {
		component.SetObserver(metrics)
	}
	return &runtime{logger: logger, metrics: metrics, prevDebug: prevDebug}, nil
}

func (r *runtime) close() {
	component.SetObserver(nil)
	errors.SetHandler(nil)
	component.SetLogger(nil)
	component.SetDebugMode(r.prevDebug)
	_ = r.logger.Sync()
}
