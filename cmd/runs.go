package cmd

import (
	"errors"
	"fmt"

	"github.com/huangsam/tensorprep/internal/contract"
	"github.com/huangsam/tensorprep/internal/outwriter"
	"github.com/huangsam/tensorprep/internal/runstore"
	"github.com/huangsam/tensorprep/internal/tensorio"
	"github.com/huangsam/tensorprep/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsSetup loads minimal configuration needed for run tracking operations.
// This is used by commands that need store access without full shared setup.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("run-backend"))
	connStr := viper.GetString("run-db-connect")

	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid run-backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	store, err := runstore.New(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}
	runStore = store

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = viper.GetInt("precision")
	cfg.Width = viper.GetInt("width")
	cfg.RunsLimit = viper.GetInt("runs-limit")

	useColors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return err
	}
	cfg.UseColors = useColors

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This specialized setup does NOT initialize the store or create tables,
// allowing migrations to run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("run-backend"))
	connStr := viper.GetString("run-db-connect")

	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid run-backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunDBFilePath()
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for the migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on run history management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by pipeline commands. This avoids data directory
// validation for simple bookkeeping operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage preparation run history and exports",
	Long: `Manage the run history recorded by the 'prepare' command.

When enabled, tensorprep records every preparation run, storing:
- Run metadata (timestamp, configuration, duration)
- Derived pad size and split sizes
- The full parameter set as JSON for reproducibility

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show recent runs
  status  - Show run tracking statistics
  export  - Export run history to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Show the last runs
  tensorprep runs list

  # Export for analysis in pandas/DuckDB
  tensorprep runs export --output-file runs.parquet`,
}

// runsListCmd lists recent runs.
var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent preparation runs, newest first",
	Long: `List recent preparation runs with their key parameters and outcomes.

Each row shows the run id, timing, data directory, seed, percentile,
train fraction and the derived pad size and split sizes, making it easy
to find the exact configuration that produced a set of tensors.

Examples:
  # Show the last 25 runs
  tensorprep runs list

  # Show more history as CSV
  tensorprep runs list --runs-limit 100 --output csv`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		limit := cfg.RunsLimit
		if limit > contract.MaxRunsLimit {
			limit = contract.MaxRunsLimit
		}
		records, err := runStore.ListRuns(limit)
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		if err := outwriter.WriteRunRecords(records, cfg); err != nil {
			contract.LogFatal("Failed to write run records", err)
		}
	},
}

// runsStatusCmd shows run tracking status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about run history tracking.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last run id and timestamp

Use this to verify run tracking is enabled and working.

Examples:
  # Check run tracking status
  tensorprep runs status`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := runStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run tracking status", err)
		}
		outwriter.PrintRunStoreStatus(status)
	},
}

// runsExportCmd exports run history to a Parquet file.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored preparation runs to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all run history
  tensorprep runs export --output-file runs.parquet

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('runs.parquet') ORDER BY run_id DESC"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Failed to export run history", errors.New("--output-file is required"))
		}
		records, err := runStore.ListRuns(contract.MaxRunsLimit)
		if err != nil {
			contract.LogFatal("Failed to load run history", err)
		}
		if err := tensorio.WriteRunRecordsParquet(records, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  tensorprep runs migrate

  # Migrate to specific version
  tensorprep runs migrate --target-version 1

  # Rollback all migrations
  tensorprep runs migrate --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.MigrateRuns(cfg.RunBackend, cfg.RunDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
