// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteBatch prints ranked batch results using the configured output format.
func (ow *OutWriter) WriteBatch(batch *schema.BatchResult, cfg *contract.Config, duration time.Duration) error {
	return PrintBatchResult(batch, cfg, duration)
}

// WriteSingle prints one evaluation result using the configured output format.
func (ow *OutWriter) WriteSingle(res *schema.EvaluationResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSingleResult(res, cfg, duration)
}

// WriteConstants prints the built-in constant table.
func (ow *OutWriter) WriteConstants(cfg *contract.Config) error {
	return PrintConstants(cfg)
}

// PrintBatchResult outputs a ranked batch, dispatching on the configured
// output format.
func PrintBatchResult(batch *schema.BatchResult, cfg *contract.Config, duration time.Duration) error {
	applyColorPolicy(cfg)
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeBatchJSONResults(batch, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeBatchCSVResults(batch, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeBatchParquetResults(batch, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeBatchTableResults(batch, cfg, duration)
	}
	return nil
}

// PrintSingleResult outputs one evaluation result. JSON mode emits the raw
// result object; everything else gets the human-readable card.
func PrintSingleResult(res *schema.EvaluationResult, cfg *contract.Config, duration time.Duration) error {
	applyColorPolicy(cfg)
	if cfg.Output == schema.JSONOut {
		return writeSingleJSONResult(res, cfg)
	}
	return writeSingleCard(res, cfg, duration)
}

// applyColorPolicy disables ANSI colors when the user asked for plain
// output. Enabling is left to the library's own tty detection.
func applyColorPolicy(cfg *contract.Config) {
	if !cfg.UseColors {
		color.NoColor = true
	}
}
