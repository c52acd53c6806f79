package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diamondstats/lahman/pkg/cache"
	"github.com/diamondstats/lahman/pkg/config"
	"github.com/diamondstats/lahman/pkg/telemetry"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOutput bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lahman",
		Short: "Lahman - Baseball dataset cache",
		Long: `Lahman caches the bundled Lahman baseball database into a storage
backend and keeps the connection around for reuse.

Supported backends:
  - sqlite:   embedded file database
  - duckdb:   embedded columnar database
  - postgres: networked PostgreSQL server
  - mysql:    networked MySQL server
  - bigquery: Google BigQuery warehouse`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	// Add subcommands
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newTablesCommand())
	rootCmd.AddCommand(newPathCommand())

	return rootCmd
}

// newProvider builds a cache provider from the global flags.
func newProvider() (*cache.Provider, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	logger := telemetry.NewLogger(level, !jsonOutput)

	return cache.New(cfg,
		cache.WithLogger(logger),
		cache.WithMetrics(telemetry.NewMetrics()),
	), nil
}
