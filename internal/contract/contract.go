// Package contract defines the configuration surface and the interfaces
// between the core engine and its collaborators (archive, critic).
package contract

import (
	"context"
	"time"

	"github.com/quarkw/constfit/schema"
)

// ArchiveStore persists batch runs and their ranked results. The core
// treats persistence as strictly optional: a nil store disables it.
type ArchiveStore interface {
	// BeginRun records the start of a batch run and returns its ID.
	BeginRun(start time.Time, params map[string]any) (int64, error)

	// RecordResult stores one ranked result for a run. rank is 1-based.
	RecordResult(runID int64, rank int, res *schema.EvaluationResult) error

	// EndRun finalizes a run with its summary.
	EndRun(runID int64, end time.Time, summary schema.BatchSummary) error

	// Status reports archive counters.
	Status() (*schema.ArchiveStatus, error)

	// Clear removes all archived runs and results.
	Clear() error

	// Close releases the underlying connection.
	Close() error
}

// Critic produces a free-text qualitative critique for one ranked result.
// Implementations must degrade gracefully: a failed or unparseable reply
// yields a Critique marked Unavailable, never an aborted batch.
type Critic interface {
	Critique(ctx context.Context, res *schema.EvaluationResult) *schema.Critique
}
