package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quarkw/constfit/internal/archive"
	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

// archiveSetup loads minimal configuration needed for archive operations.
// This is used by commands that need archive access without full shared
// setup.
func archiveSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("archive-backend")

	// Handle empty backend as the SQLite default, so 'constfit archive
	// status' works out of the box
	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.SQLiteBackend
	}
	if !schema.ValidDatabaseBackend(backend) {
		return fmt.Errorf("archive backend must be sqlite, mysql, postgresql or none, got %q", backendStr)
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = viper.GetString("archive-db-connect")
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// archiveCmd groups results-archive management.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the results archive and exports",
	Long: `Manage archived batch runs used for history and reporting.

When archiving is enabled, every batch run stores:
- Run metadata (timestamp, parameters, summary counters)
- The ranked results with their full quality metrics

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show archive statistics
  export  - Export archived data to Parquet for analytics
  clear   - Remove all archived data
  migrate - Run database schema migrations

Examples:
  # Check archive status
  constfit archive status

  # Export for analysis in pandas/DuckDB
  constfit archive export --output-file constfit-data`,
}

// archiveStatusCmd shows archive statistics.
var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display archive statistics and connection details",
	Long: `Show counters for the results archive.

Displays:
- Backend type
- Total archived runs and results
- Timestamp of the most recent run

Examples:
  constfit archive status
  constfit archive status --archive-backend postgresql --archive-db-connect postgres://...`,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := archive.NewStore(cfg.ArchiveBackend, cfg.ArchiveDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open archive", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.Status()
		if err != nil {
			contract.LogFatal("Failed to get archive status", err)
		}
		archive.PrintStatus(status)
	},
}

// archiveClearCmd clears the archived data.
var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived runs and results",
	Long: `Delete every archived run and its ranked results.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  constfit archive export --output-file backup
  constfit archive clear`,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := archive.NewStore(cfg.ArchiveBackend, cfg.ArchiveDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open archive", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear archive", err)
		}
		fmt.Println("Archive cleared successfully.")
	},
}

// archiveExportCmd exports archived data to Parquet files.
var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived data to Parquet for BI tools and analytics",
	Long: `Export all archived data to Parquet format.

Exports two datasets:
- Runs    - metadata about each batch run
- Results - the ranked results with quality metrics

Requires: --output-file parameter (used as a filename prefix)

Examples:
  # Export all data
  constfit archive export --output-file constfit-data

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('constfit-data.results.parquet') LIMIT 10"`,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := archive.ExecuteExport(cfg.ArchiveBackend, cfg.ArchiveDBConnect, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export archive", err)
		}
	},
}

// archiveMigrateCmd runs database migrations for the archive.
var archiveMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the results archive.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  constfit archive migrate

  # Rollback to initial state
  constfit archive migrate --target-version 0`,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := archive.Migrate(cfg.ArchiveBackend, cfg.ArchiveDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
