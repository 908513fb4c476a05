package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarkw/constfit/core"
	"github.com/quarkw/constfit/internal/archive"
	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/internal/critic"
	"github.com/quarkw/constfit/internal/outwriter"
	"github.com/quarkw/constfit/schema"
)

// batchCmd evaluates a batch of expressions and ranks them.
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Evaluate a batch of expressions and rank them best-first.",
	Long: `Evaluate a JSON array of candidate expressions concurrently, score each
against its target, and print them ranked by overall score.

Each item needs an 'expression' and a 'target' (common aliases like
'expr', 'formula', 'target_value' or 'value' are accepted). A malformed
item fails alone at its index; only a payload that is not a JSON array
fails the whole batch.

Pass '-' to read the batch from stdin.

Examples:
  # Rank pi approximations
  constfit batch approximations.json

  # Pipe from a generator and keep the top 10
  generate-candidates | constfit batch - --limit 10

  # Archive the run for later analysis
  constfit batch approximations.json --archive-backend sqlite

  # Export the ranked results for DuckDB
  constfit batch approximations.json --output parquet --output-file ranked.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		payload, err := readBatchPayload(args[0])
		if err != nil {
			contract.LogFatal("Cannot read batch payload", err)
		}

		items, mapErr := contract.MapBatchPayload(payload)
		if mapErr != nil {
			// Batch-fatal shape failure: render the same zero-success
			// result the HTTP API returns, then exit non-zero.
			shape := schema.NewInputShapeResult(mapErr.Message)
			if err := outwriter.PrintBatchResult(shape, cfg, 0); err != nil {
				contract.LogFatal("Cannot render batch result", err)
			}
			os.Exit(1)
		}

		store := buildStore()
		if store != nil {
			defer func() { _ = store.Close() }()
		}

		if err := core.ExecuteEvalBatch(rootCtx, cfg, items, store, buildCritic()); err != nil {
			contract.LogFatal("Cannot evaluate batch", err)
		}
	},
}

// readBatchPayload reads the batch file, with "-" meaning stdin.
func readBatchPayload(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read batch file %q: %w", path, err)
	}
	return data, nil
}

// buildStore opens the configured archive store, or nil when archiving is
// disabled. Store failures are warnings so evaluation still runs.
func buildStore() contract.ArchiveStore {
	if cfg.ArchiveBackend == schema.NoneBackend {
		return nil
	}
	store, err := archive.NewStore(cfg.ArchiveBackend, cfg.ArchiveDBConnect)
	if err != nil {
		contract.LogWarn("Archive unavailable, continuing without it", err)
		return nil
	}
	return store
}

// buildCritic builds the critique client when critiques are requested, or
// nil otherwise. A missing API key degrades to no critiques.
func buildCritic() contract.Critic {
	if !cfg.Critique {
		return nil
	}
	client, err := critic.NewClient(cfg.CritiqueModel)
	if err != nil {
		contract.LogWarn("Critique unavailable, continuing without it", err)
		return nil
	}
	return client
}
