package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/internal/parquet"
	"github.com/quarkw/constfit/schema"
)

// writeBatchTableResults generates and writes the human-readable table.
func writeBatchTableResults(batch *schema.BatchResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeBatchTable(batch, cfg, duration, w)
	}, "Wrote table")
}

func writeBatchTable(batch *schema.BatchResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Expression", "Computed", "AbsErr", "Digits", "Cmplx", "Score", "Label"}
	table.Header(headers)

	// 2. Configure alignment to match a minimal numeric look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	exprWidth := GetMaxTableExprWidth(cfg)
	var data [][]string
	for i, r := range batch.Ranked {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateExpression(r.Request.Expression, exprWidth),
			contract.TruncateExpression(r.Computed, 22),
			shortDecimal(r.Quality.AbsoluteError),
			strconv.Itoa(r.Quality.AccuracyDigits),
			strconv.Itoa(r.Quality.Complexity),
			fmt.Sprintf("%.4g", r.Quality.OverallScore),
			contract.GetColorLabel(r.Quality.AccuracyDigits, cfg.PrecisionDigits),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 5. Item failures, if any, below the table at their original indexes
	if len(batch.Errors) > 0 {
		if _, err := fmt.Fprintln(writer, "Errors:"); err != nil {
			return err
		}
		for _, e := range batch.Errors {
			if _, err := fmt.Fprintf(writer, "  [%d] %s (%s): %s\n",
				e.Index, e.Expression, e.Kind, e.Message); err != nil {
				return err
			}
		}
	}

	s := batch.Summary
	if _, err := fmt.Fprintf(writer, "Showing top %d of %d results (%d failed, best score: %.4g)\n",
		len(batch.Ranked), s.Total, s.Failed, s.BestScore); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Evaluation completed in %v with %d workers at %d-digit precision\n",
		duration, cfg.Workers, cfg.PrecisionDigits); err != nil {
		return err
	}
	return nil
}

// writeBatchCSVResults handles opening the file and calling the CSV writer.
func writeBatchCSVResults(batch *schema.BatchResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForBatch(w, batch, cfg)
	}, "Wrote CSV")
}

// writeCSVResultsForBatch writes the ranked results in CSV format.
func writeCSVResultsForBatch(w io.Writer, batch *schema.BatchResult, cfg *contract.Config) error {
	header := []string{
		"rank",
		"expression",
		"target_name",
		"target_value",
		"computed",
		"absolute_error",
		"relative_error",
		"complexity",
		"elegance_score",
		"accuracy_digits",
		"overall_score",
		"label",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range batch.Ranked {
			rec := []string{
				strconv.Itoa(i + 1),
				r.Request.Expression,
				r.Request.TargetName,
				r.Request.TargetValue,
				r.Computed,
				r.Quality.AbsoluteError,
				r.Quality.RelativeError,
				strconv.Itoa(r.Quality.Complexity),
				r.Quality.EleganceScore,
				strconv.Itoa(r.Quality.AccuracyDigits),
				strconv.FormatFloat(r.Quality.OverallScore, 'g', -1, 64),
				contract.GetPlainLabel(r.Quality.AccuracyDigits, cfg.PrecisionDigits),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeBatchJSONResults handles opening the file and calling the JSON writer.
func writeBatchJSONResults(batch *schema.BatchResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForBatch(w, batch, cfg)
	}, "Wrote JSON")
}

// writeJSONResultsForBatch writes the full batch outcome in JSON format,
// with rank and label annotations added to each ranked result.
func writeJSONResultsForBatch(w io.Writer, batch *schema.BatchResult, cfg *contract.Config) error {
	type JSONRankedResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.EvaluationResult
	}
	type JSONBatchResult struct {
		Ranked  []JSONRankedResult  `json:"ranked"`
		Errors  []schema.ItemError  `json:"errors"`
		Summary schema.BatchSummary `json:"summary"`
	}

	output := JSONBatchResult{
		Ranked:  make([]JSONRankedResult, len(batch.Ranked)),
		Errors:  batch.Errors,
		Summary: batch.Summary,
	}
	for i, r := range batch.Ranked {
		output.Ranked[i] = JSONRankedResult{
			Rank:             i + 1,
			Label:            contract.GetPlainLabel(r.Quality.AccuracyDigits, cfg.PrecisionDigits),
			EvaluationResult: r,
		}
	}

	return writeJSON(w, output)
}

// writeBatchParquetResults writes the ranked results to a Parquet file.
// Parquet is a binary format, so a concrete output file is required.
func writeBatchParquetResults(batch *schema.BatchResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires an output file, set --output-file")
	}
	rows := make([]parquet.RankedResult, len(batch.Ranked))
	for i := range batch.Ranked {
		rows[i] = parquet.FromEvaluationResult(0, i+1, &batch.Ranked[i])
	}
	if err := parquet.WriteRankedResultsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}
