package archive

import (
	"errors"
	"fmt"
	"time"

	"github.com/quarkw/constfit/internal/parquet"
	"github.com/quarkw/constfit/schema"
)

// ExecuteExport dumps the archive to a pair of Parquet files:
// <output>.runs.parquet and <output>.results.parquet.
func ExecuteExport(backend schema.DatabaseBackend, connStr, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store, err := NewStore(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	impl, ok := store.(*StoreImpl)
	if !ok || impl.db == nil {
		return errors.New("no archive backend configured, set --archive-backend")
	}

	status, err := impl.Status()
	if err != nil {
		return fmt.Errorf("failed to get archive status: %w", err)
	}
	if status.Runs == 0 {
		return errors.New("no archived runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.Runs)
	fmt.Printf("Total results: %d\n", status.Results)

	runs, err := impl.allRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve archived runs: %w", err)
	}
	results, err := impl.allResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve archived results: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteEvaluationRunsParquet(runs, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	resultsFile := outputFile + ".results.parquet"
	if err := parquet.WriteRankedResultsParquet(results, resultsFile); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	fmt.Printf("Exported %d result records to: %s\n", len(results), resultsFile)

	return nil
}

// allRuns retrieves every archived run in insertion order.
func (s *StoreImpl) allRuns() ([]parquet.EvaluationRun, error) {
	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, total_items,
    successful_items, failed_items, best_score, config_params
    FROM %s ORDER BY run_id`, runsTable)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []parquet.EvaluationRun
	for rows.Next() {
		var record parquet.EvaluationRun
		var totalItems, successfulItems, failedItems *int32
		var bestScore *float64

		switch s.backend {
		case schema.SQLiteBackend:
			var startStr string
			var endStr *string
			if err := rows.Scan(&record.RunID, &startStr, &endStr, &totalItems,
				&successfulItems, &failedItems, &bestScore, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan archived run: %w", err)
			}
			start, err := time.Parse(time.RFC3339Nano, startStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = start
			if endStr != nil {
				end, err := time.Parse(time.RFC3339Nano, *endStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &end
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &totalItems,
				&successfulItems, &failedItems, &bestScore, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan archived run: %w", err)
			}
		}

		if totalItems != nil {
			record.TotalItems = *totalItems
		}
		if successfulItems != nil {
			record.SuccessfulItems = *successfulItems
		}
		if failedItems != nil {
			record.FailedItems = *failedItems
		}
		if bestScore != nil {
			record.BestScore = *bestScore
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating archived runs: %w", err)
	}
	return records, nil
}

// allResults retrieves every archived result ordered by run and rank.
func (s *StoreImpl) allResults() ([]parquet.RankedResult, error) {
	query := fmt.Sprintf(`SELECT run_id, result_rank, item_index, expression, target_name,
    target_value, computed, absolute_error, relative_error,
    complexity, elegance_score, accuracy_digits, overall_score
    FROM %s ORDER BY run_id, result_rank`, resultsTable)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []parquet.RankedResult
	for rows.Next() {
		var record parquet.RankedResult
		if err := rows.Scan(&record.RunID, &record.Rank, &record.ItemIndex, &record.Expression,
			&record.TargetName, &record.TargetValue, &record.Computed,
			&record.AbsoluteError, &record.RelativeError,
			&record.Complexity, &record.EleganceScore,
			&record.AccuracyDigits, &record.OverallScore); err != nil {
			return nil, fmt.Errorf("failed to scan archived result: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating archived results: %w", err)
	}
	return records, nil
}

// PrintStatus prints archive status information.
func PrintStatus(status *schema.ArchiveStatus) {
	fmt.Printf("Archive Backend: %s\n", status.Backend)
	if status.Backend == string(schema.NoneBackend) {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.Runs)
	fmt.Printf("Total Results: %d\n", status.Results)
	if status.Runs > 0 {
		fmt.Printf("Last Run: %s\n", status.LastRun.Format("2006-01-02 15:04:05"))
	}
}
