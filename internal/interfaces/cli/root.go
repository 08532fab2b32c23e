// Package cli wires the resolution engine into a command-line surface: the
// root command loads configuration and constructs the facade, subcommands
// expose the two facade operations.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/turtacn/ChemVault/internal/application/resolution"
	"github.com/turtacn/ChemVault/internal/config"
	"github.com/turtacn/ChemVault/internal/domain/identity"
	"github.com/turtacn/ChemVault/internal/domain/structure"
	"github.com/turtacn/ChemVault/internal/infrastructure/cache"
	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemVault/internal/infrastructure/sources/cactus"
	"github.com/turtacn/ChemVault/internal/infrastructure/sources/pubchem"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// CLIContext carries the initialized dependencies through the command tree.
type CLIContext struct {
	Config  *config.Config
	Logger  logging.Logger
	Service resolution.Service
	Toolkit structure.Toolkit
}

type cliContextKey struct{}

// NewRootCommand creates the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "chemvault",
		Short:   "ChemVault — chemical identity resolution and property computation",
		Long:    "ChemVault resolves structural descriptors into provenance-tagged chemical\nrecords: canonical form, formula, weight, standard identifiers, and a registry\nnumber obtained through an ordered chain of sources with a guaranteed fallback.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initContext(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to config file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level override (debug|info|warn|error)")

	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newPropertiesCommand())
	return cmd
}

// initContext loads config, builds the logger, and assembles the resolver
// chain behind the facade.
func initContext(cmd *cobra.Command, opts *RootOptions) error {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	cliCtx := buildContext(cfg, logger)
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

// buildContext assembles the dependency graph from config.
func buildContext(cfg *config.Config, logger logging.Logger) *CLIContext {
	toolkit := structure.NewToolkit(cfg.Toolkit.Enabled)

	var sources []resolution.Source
	if cfg.PubChem.Enabled {
		sources = append(sources, pubchem.New(cfg.PubChem, logger))
	}
	if cfg.Cactus.Enabled {
		sources = append(sources, cactus.New(cfg.Cactus, logger))
	}
	sources = append(sources,
		identity.NewPatternSource(toolkit),
		identity.NewSyntheticSource(),
	)

	var resolverCache resolution.ResolverCache
	switch cfg.Cache.Backend {
	case "memory":
		resolverCache = cache.NewMemory(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	case "redis":
		resolverCache = cache.NewRedis(cfg.Cache, logger)
	}

	var recorder resolution.Recorder
	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace: cfg.Metrics.Namespace,
		}, logger)
		if err != nil {
			logger.Warn("metrics collector init failed, continuing without metrics",
				logging.Err(err))
		} else {
			recorder = prometheus.NewResolutionMetrics(collector)
		}
	}

	timeout := maxDuration(cfg.PubChem.Timeout, cfg.Cactus.Timeout)
	resolver := resolution.NewResolver(sources, timeout, resolverCache, recorder, logger)

	return &CLIContext{
		Config:  cfg,
		Logger:  logger,
		Service: resolution.NewService(toolkit, resolver, logger),
		Toolkit: toolkit,
	}
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// getCLIContext extracts the initialized context placed by the root command.
func getCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	v := cmd.Context().Value(cliContextKey{})
	cliCtx, ok := v.(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, fmt.Errorf("CLI context not initialized")
	}
	return cliCtx, nil
}

// printJSON writes v to the command's stdout, indented.
func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// Main is the conventional entry point used by cmd/chemvault.
func Main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
