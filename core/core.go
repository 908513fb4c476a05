// Package core has core logic for evaluation, scoring and ranking.
package core

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/quarkw/constfit/core/eval"
	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/internal/outwriter"
	"github.com/quarkw/constfit/schema"
)

// EvaluateOne evaluates and scores a single request at the configured
// precision. It is the entry point for the 'eval' mode and the single-shot
// HTTP and MCP endpoints.
func EvaluateOne(cfg *contract.Config, req *schema.EvaluationRequest) (*schema.EvaluationResult, error) {
	result, itemErr := evaluateItem(cfg, 0, req)
	if itemErr != nil {
		return nil, schema.NewEvalError(itemErr.Kind, "%s", itemErr.Message)
	}
	return result, nil
}

// EvaluateBatch evaluates all items concurrently, scores the successes and
// returns them ranked best-first. Item failures are isolated: a bad item
// lands in Errors at its original index and never aborts the batch. The
// context deadline, if any, fails not-yet-started items with a timeout
// error rather than blocking.
func EvaluateBatch(ctx context.Context, cfg *contract.Config, items []schema.EvaluationRequest) *schema.BatchResult {
	itemCh := make(chan int, len(items))
	resultCh := make(chan schema.EvaluationResult, len(items))
	errCh := make(chan schema.ItemError, len(items))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for idx := range itemCh {
				select {
				case <-ctx.Done():
					errCh <- schema.ItemError{
						Index:      idx,
						Expression: expressionLabel(items[idx].Expression),
						Kind:       schema.TimeoutError,
						Message:    "evaluation deadline exceeded before item started",
					}
					continue
				default:
				}
				result, itemErr := evaluateItem(cfg, idx, &items[idx])
				if itemErr != nil {
					errCh <- *itemErr
					continue
				}
				resultCh <- *result
			}
		})
	}

	// Send item indexes to worker channel
	for idx := range items {
		itemCh <- idx
	}
	close(itemCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(resultCh)
	close(errCh)

	results := make([]schema.EvaluationResult, 0, len(items))
	for r := range resultCh {
		results = append(results, r)
	}
	itemErrors := make([]schema.ItemError, 0)
	for e := range errCh {
		itemErrors = append(itemErrors, e)
	}
	sort.Slice(itemErrors, func(i, j int) bool {
		return itemErrors[i].Index < itemErrors[j].Index
	})

	ranked := RankResults(results, 0)

	summary := schema.BatchSummary{
		Total:      len(items),
		Successful: len(ranked),
		Failed:     len(itemErrors),
	}
	if len(ranked) > 0 {
		summary.BestScore = ranked[0].Quality.OverallScore
	}

	return &schema.BatchResult{
		Ranked:  ranked,
		Errors:  itemErrors,
		Summary: summary,
	}
}

// evaluateItem runs the full pipeline for one item: validate, evaluate,
// score. A nil ItemError means success.
func evaluateItem(cfg *contract.Config, index int, req *schema.EvaluationRequest) (*schema.EvaluationResult, *schema.ItemError) {
	if req.Expression == "" {
		return nil, &schema.ItemError{
			Index:      index,
			Expression: expressionLabel(req.Expression),
			Kind:       schema.MissingFieldError,
			Message:    "required field 'expression' is missing or empty",
		}
	}
	if req.TargetValue == "" {
		return nil, &schema.ItemError{
			Index:      index,
			Expression: req.Expression,
			Kind:       schema.MissingFieldError,
			Message:    "required field 'target_value' is missing or empty",
		}
	}

	overrides := mergeOverrides(cfg.Constants, req.Constants)
	evaluator := eval.NewEvaluator(cfg.MantissaBits(), overrides)

	computed, err := evaluator.Evaluate(req.Expression)
	if err != nil {
		itemErr := schema.AsItemError(index, req.Expression, err)
		return nil, &itemErr
	}

	target, ok := new(big.Float).SetPrec(cfg.MantissaBits()).SetString(req.TargetValue)
	if !ok {
		return nil, &schema.ItemError{
			Index:      index,
			Expression: req.Expression,
			Kind:       schema.ParseError,
			Message:    fmt.Sprintf("invalid target value %q", req.TargetValue),
		}
	}

	quality, err := scoreQuality(cfg, req.Expression, computed, target, overrideNames(overrides))
	if err != nil {
		itemErr := schema.AsItemError(index, req.Expression, err)
		return nil, &itemErr
	}

	return &schema.EvaluationResult{
		Index:    index,
		Request:  *req,
		Computed: computed.Text('g', cfg.PrecisionDigits),
		Quality:  quality,
	}, nil
}

// ExecuteEvalOne evaluates one expression and prints the result. It serves
// as the main entry point for the 'eval' mode.
func ExecuteEvalOne(ctx context.Context, cfg *contract.Config, req *schema.EvaluationRequest, critic contract.Critic) error {
	start := time.Now()
	result, err := EvaluateOne(cfg, req)
	if err != nil {
		return err
	}
	if critic != nil && cfg.Critique {
		result.Critique = critic.Critique(ctx, result)
	}
	duration := time.Since(start)
	return outwriter.PrintSingleResult(result, cfg, duration)
}

// ExecuteEvalBatch evaluates a batch, optionally annotates and archives the
// ranked results, and prints them. It serves as the main entry point for
// the 'batch' mode.
func ExecuteEvalBatch(ctx context.Context, cfg *contract.Config, items []schema.EvaluationRequest, store contract.ArchiveStore, critic contract.Critic) error {
	start := time.Now()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	batch := EvaluateBatch(ctx, cfg, items)
	batch.Ranked = RankResults(batch.Ranked, cfg.ResultLimit)

	return FinishBatch(ctx, cfg, batch, store, critic, start)
}

// FinishBatch annotates, archives and prints a completed batch. It is
// shared by the batch and discover entry points.
func FinishBatch(ctx context.Context, cfg *contract.Config, batch *schema.BatchResult, store contract.ArchiveStore, critic contract.Critic, start time.Time) error {
	annotateTopResults(ctx, cfg, critic, batch)
	archiveBatch(cfg, store, batch, start)
	return outwriter.PrintBatchResult(batch, cfg, time.Since(start))
}

// annotateTopResults attaches critiques to the ranked results. Critique is
// presentation-only and never reorders the batch.
func annotateTopResults(ctx context.Context, cfg *contract.Config, critic contract.Critic, batch *schema.BatchResult) {
	if critic == nil || !cfg.Critique {
		return
	}
	for i := range batch.Ranked {
		batch.Ranked[i].Critique = critic.Critique(ctx, &batch.Ranked[i])
	}
}

// archiveBatch records a finished run in the archive. Archive failures are
// warnings, never batch failures.
func archiveBatch(cfg *contract.Config, store contract.ArchiveStore, batch *schema.BatchResult, start time.Time) {
	if store == nil {
		return
	}
	params := map[string]any{
		"precision":       cfg.PrecisionDigits,
		"elegance_weight": cfg.EleganceWeight,
		"workers":         cfg.Workers,
		"result_limit":    cfg.ResultLimit,
	}
	runID, err := store.BeginRun(start, params)
	if err != nil {
		contract.LogWarn("Archive run initialization failed", err)
		return
	}
	for i := range batch.Ranked {
		if err := store.RecordResult(runID, i+1, &batch.Ranked[i]); err != nil {
			contract.LogWarn("Archive result recording failed", err)
		}
	}
	if err := store.EndRun(runID, time.Now(), batch.Summary); err != nil {
		contract.LogWarn("Archive run finalization failed", err)
	}
}

// mergeOverrides layers request-level constants over config-level ones.
func mergeOverrides(base, extra map[string]string) map[string]string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

func overrideNames(overrides map[string]string) []string {
	if len(overrides) == 0 {
		return nil
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	return names
}

func expressionLabel(expr string) string {
	if expr == "" {
		return "unknown"
	}
	return expr
}
