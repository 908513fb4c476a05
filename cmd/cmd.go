// Package cmd defines the command-line interface for constfit.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quarkw/constfit/core/genetic"
	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the archive subcommands to the parent archive command
	archiveCmd.AddCommand(archiveStatusCmd)
	archiveCmd.AddCommand(archiveClearCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	archiveCmd.AddCommand(archiveMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("precision", "p", contract.DefaultPrecisionDigits, "Significant decimal digits to report (10-90)")
	rootCmd.PersistentFlags().Int("guard-digits", contract.DefaultGuardDigits, "Extra internal digits carried against rounding artifacts")
	rootCmd.PersistentFlags().Float64("elegance-weight", contract.DefaultEleganceWeight, "Complexity penalty k in elegance = error * (1 + k*complexity)")
	rootCmd.PersistentFlags().Float64("score-epsilon", contract.DefaultScoreEpsilon, "Additive floor that keeps overall scores finite for exact matches")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of ranked results to display")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("timeout", "", "Overall batch deadline (e.g. '30s', '2m'; empty = none)")
	rootCmd.PersistentFlags().StringToString("constants", nil, "Custom constant overrides as name=decimal pairs")
	rootCmd.PersistentFlags().String("archive-backend", "", "Results archive backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("archive-db-connect", "", "Database connection string for mysql/postgresql archives")
	rootCmd.PersistentFlags().Bool("critique", false, "Annotate ranked results with model-generated critiques")
	rootCmd.PersistentFlags().String("critique-model", contract.DefaultCritiqueModel, "Model used for critiques")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of evalCmd to Viper
	evalCmd.Flags().StringP("target", "t", "", "Target value as a decimal string, or a built-in constant name")
	evalCmd.Flags().String("target-name", "", "Optional label for the target constant")
	if err := viper.BindPFlags(evalCmd.Flags()); err != nil {
		contract.LogFatal("Error binding eval flags", err)
	}

	// Bind all flags of discoverCmd to Viper
	discoverCmd.Flags().Int("generations", genetic.DefaultGenerations, "Maximum number of generations to evolve")
	discoverCmd.Flags().Int("population", genetic.DefaultPopulation, "Candidates evaluated per generation")
	discoverCmd.Flags().Int("pool-size", genetic.DefaultPoolSize, "Best candidates carried between generations")
	discoverCmd.Flags().Int64("seed", 0, "Random seed for reproducible runs (0 = time-based)")
	discoverCmd.Flags().String("stop-error", genetic.DefaultStopError, "Absolute error at which the search stops early")
	if err := viper.BindPFlags(discoverCmd.Flags()); err != nil {
		contract.LogFatal("Error binding discover flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Listen address for the HTTP API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of archiveMigrateCmd to Viper
	archiveMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(archiveMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding archive migrate flags", err)
	}
}
