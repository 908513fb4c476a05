// Package parquet provides data structures and functions for exporting
// ranked evaluation data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/quarkw/constfit/schema"
)

// EvaluationRun represents a single archived batch run with metadata.
// This struct maps to the constfit_runs database table.
type EvaluationRun struct {
	// RunID is the unique identifier for this batch run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// TotalItems is the number of items submitted in this run
	TotalItems int32 `parquet:"total_items,snappy"`

	// SuccessfulItems is the number of items that evaluated cleanly
	SuccessfulItems int32 `parquet:"successful_items,snappy"`

	// FailedItems is the number of items that failed
	FailedItems int32 `parquet:"failed_items,snappy"`

	// BestScore is the overall score of the top-ranked result
	BestScore float64 `parquet:"best_score,snappy"`

	// ConfigParams contains the JSON-encoded run parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RankedResult represents one ranked result of an archived run.
// This struct maps to the constfit_results database table.
type RankedResult struct {
	// RunID references the parent batch run
	RunID int64 `parquet:"run_id,snappy"`

	// Rank is the 1-based position in the run's ranking
	Rank int32 `parquet:"rank,snappy"`

	// ItemIndex is the original position in the submitted batch
	ItemIndex int32 `parquet:"item_index,snappy"`

	// Expression is the evaluated expression text
	Expression string `parquet:"expression,snappy"`

	// TargetName is the label for the target constant (nullable)
	TargetName *string `parquet:"target_name,optional,snappy"`

	// TargetValue is the decimal text of the target
	TargetValue string `parquet:"target_value,snappy"`

	// Computed is the decimal text of the evaluated expression
	Computed string `parquet:"computed,snappy"`

	// AbsoluteError is the decimal text of |computed - target|
	AbsoluteError string `parquet:"absolute_error,snappy"`

	// RelativeError is the decimal text of the error relative to the target
	RelativeError string `parquet:"relative_error,snappy"`

	// Complexity is the textual complexity of the expression
	Complexity int32 `parquet:"complexity,snappy"`

	// EleganceScore is the decimal text of the complexity-penalized error
	EleganceScore string `parquet:"elegance_score,snappy"`

	// AccuracyDigits is the count of correct leading decimal digits
	AccuracyDigits int32 `parquet:"accuracy_digits,snappy"`

	// OverallScore is the ranking composite (higher is better)
	OverallScore float64 `parquet:"overall_score,snappy"`
}

// FromEvaluationResult converts a ranked in-memory result into its Parquet
// row shape. rank is 1-based.
func FromEvaluationResult(runID int64, rank int, res *schema.EvaluationResult) RankedResult {
	row := RankedResult{
		RunID:          runID,
		Rank:           int32(rank),
		ItemIndex:      int32(res.Index),
		Expression:     res.Request.Expression,
		TargetValue:    res.Request.TargetValue,
		Computed:       res.Computed,
		AbsoluteError:  res.Quality.AbsoluteError,
		RelativeError:  res.Quality.RelativeError,
		Complexity:     int32(res.Quality.Complexity),
		EleganceScore:  res.Quality.EleganceScore,
		AccuracyDigits: int32(res.Quality.AccuracyDigits),
		OverallScore:   res.Quality.OverallScore,
	}
	if res.Request.TargetName != "" {
		name := res.Request.TargetName
		row.TargetName = &name
	}
	return row
}

// WriteEvaluationRunsParquet writes a slice of EvaluationRun structs to a
// Parquet file.
func WriteEvaluationRunsParquet(data []EvaluationRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the EvaluationRun struct tags
	writer := parquet.NewGenericWriter[EvaluationRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRankedResultsParquet writes a slice of RankedResult structs to a
// Parquet file.
func WriteRankedResultsParquet(data []RankedResult, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the RankedResult struct tags
	writer := parquet.NewGenericWriter[RankedResult](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
