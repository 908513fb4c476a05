package genetic

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/quarkw/constfit/core"
	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

// Defaults for a discovery run.
const (
	DefaultGenerations = 50
	DefaultPopulation  = 100
	DefaultPoolSize    = 25

	// DefaultStopError is the absolute error below which the search
	// stops early.
	DefaultStopError = "1e-12"
)

// Options configure one discovery run against a single target.
type Options struct {
	TargetValue string
	TargetName  string
	Generations int
	Population  int
	PoolSize    int
	Seed        int64 // 0 = time-based
	StopError   string
}

// Discover evolves candidate expressions toward the target and returns the
// surviving gene pool as a ranked batch. Candidate failures (domain
// errors, division by zero) are part of the search and surface only in the
// summary counts; a context deadline ends the run with whatever the pool
// holds. Result indexes number candidates in generation order.
func Discover(ctx context.Context, cfg *contract.Config, opts Options) (*schema.BatchResult, error) {
	if opts.TargetValue == "" {
		return nil, fmt.Errorf("discovery requires a target value")
	}
	if opts.Generations < 1 {
		opts.Generations = DefaultGenerations
	}
	if opts.Population < 1 {
		opts.Population = DefaultPopulation
	}
	if opts.PoolSize < 1 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.StopError == "" {
		opts.StopError = DefaultStopError
	}
	stop, ok := new(big.Float).SetPrec(cfg.MantissaBits()).SetString(opts.StopError)
	if !ok || stop.Sign() < 0 {
		return nil, fmt.Errorf("invalid stop error %q", opts.StopError)
	}

	engine := NewEngine(opts.Seed)
	seen := make(map[string]bool)
	var pool []schema.EvaluationResult
	var summary schema.BatchSummary

search:
	for gen := range opts.Generations {
		select {
		case <-ctx.Done():
			break search
		default:
		}

		exprs := engine.Population(pool, opts.Population)
		items := make([]schema.EvaluationRequest, len(exprs))
		for i, expr := range exprs {
			items[i] = schema.EvaluationRequest{
				Expression:  expr,
				TargetValue: opts.TargetValue,
				TargetName:  opts.TargetName,
			}
		}

		batch := core.EvaluateBatch(ctx, cfg, items)
		offset := gen * opts.Population
		for i := range batch.Ranked {
			batch.Ranked[i].Index += offset
		}
		summary.Total += batch.Summary.Total
		summary.Successful += batch.Summary.Successful
		summary.Failed += batch.Summary.Failed

		pool = mergePool(pool, batch.Ranked, seen, opts.PoolSize)

		if len(pool) > 0 && errorBelow(&pool[0], stop, cfg.MantissaBits()) {
			break
		}
	}

	if len(pool) > 0 {
		summary.BestScore = pool[0].Quality.OverallScore
	}
	return &schema.BatchResult{
		Ranked:  pool,
		Errors:  []schema.ItemError{},
		Summary: summary,
	}, nil
}

// mergePool folds a new generation into the gene pool: expressions already
// seen in any generation are dropped, then the combined pool is re-ranked
// and trimmed to size.
func mergePool(pool, ranked []schema.EvaluationResult, seen map[string]bool, size int) []schema.EvaluationResult {
	for _, r := range ranked {
		if seen[r.Request.Expression] {
			continue
		}
		seen[r.Request.Expression] = true
		pool = append(pool, r)
	}
	return core.RankResults(pool, size)
}

// errorBelow reports whether the result's absolute error is at or below
// the stop threshold.
func errorBelow(res *schema.EvaluationResult, stop *big.Float, prec uint) bool {
	absErr, ok := new(big.Float).SetPrec(prec).SetString(res.Quality.AbsoluteError)
	if !ok {
		return false
	}
	return absErr.Cmp(stop) <= 0
}

// ExecuteDiscover runs a full discovery session and prints, optionally
// archives and critiques, the surviving pool. It serves as the main entry
// point for the 'discover' mode.
func ExecuteDiscover(ctx context.Context, cfg *contract.Config, opts Options, store contract.ArchiveStore, critic contract.Critic) error {
	start := time.Now()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	batch, err := Discover(ctx, cfg, opts)
	if err != nil {
		return err
	}
	batch.Ranked = core.RankResults(batch.Ranked, cfg.ResultLimit)

	return core.FinishBatch(ctx, cfg, batch, store, critic, start)
}
