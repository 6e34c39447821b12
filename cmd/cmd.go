// Package cmd defines the command-line interface for tensorprep.
package cmd

import (
	"github.com/huangsam/tensorprep/internal/contract"
	"github.com/huangsam/tensorprep/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(lengthsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("activities", "a", "", "Comma-separated activity id allow-list (empty = 1-6)")
	rootCmd.PersistentFlags().Float64P("percentile", "p", contract.DefaultPercentile, "Length percentile for pad sizing, in (0, 1]")
	rootCmd.PersistentFlags().Float64("train-fraction", contract.DefaultTrainFraction, "Fraction of subjects assigned to the training split, in (0, 1)")
	rootCmd.PersistentFlags().Int64("seed", contract.DefaultSeed, "Seed for the deterministic subject shuffle")
	rootCmd.PersistentFlags().String("truncate-from", string(schema.HeadSide), "Side dropped when an observation exceeds the pad size: head or tail")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("run-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of prepareCmd to Viper
	prepareCmd.Flags().StringP("out-dir", "o", "", "Directory for tensor artifacts (default: <data-dir>/tensors)")
	if err := viper.BindPFlags(prepareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding prepare flags", err)
	}

	// Bind all flags of lengthsCmd to Viper
	lengthsCmd.Flags().String("chart", "", "Optional path to write an HTML length-distribution chart")
	if err := viper.BindPFlags(lengthsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding lengths flags", err)
	}

	// Bind all flags of runsListCmd to Viper
	runsListCmd.Flags().Int("runs-limit", contract.DefaultRunsLimit, "Maximum number of runs to list")
	if err := viper.BindPFlags(runsListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs list flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
