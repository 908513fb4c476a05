// Package schema has configs, models and shared types for all parts of constfit.
package schema

import "time"

// EvaluationRequest is one unit of work: a candidate expression measured
// against a target value. Expression and TargetValue must be non-empty;
// the batch driver rejects items that are missing either field.
type EvaluationRequest struct {
	Expression  string `json:"expression"`
	TargetValue string `json:"target_value"`
	TargetName  string `json:"target_name,omitempty"`
	Description string `json:"description,omitempty"`

	// Constants holds caller-supplied name->decimal-literal overrides.
	// Overrides shadow the built-in constant table during evaluation.
	Constants map[string]string `json:"constants,omitempty"`
}

// QualityMetrics holds the derived quality measures for one successful
// evaluation. Decimal quantities are canonical decimal strings so that no
// precision is lost at the reporting boundary; OverallScore is a plain
// float64 because it is used only for ordering.
type QualityMetrics struct {
	AbsoluteError  string  `json:"absolute_error"`
	RelativeError  string  `json:"relative_error"`
	Complexity     int     `json:"complexity"`
	EleganceScore  string  `json:"elegance_score"`
	AccuracyDigits int     `json:"accuracy_digits"`
	OverallScore   float64 `json:"overall_score"`
}

// EvaluationResult is a successfully evaluated and scored batch item.
type EvaluationResult struct {
	Index    int               `json:"index"` // original position in the submitted batch
	Request  EvaluationRequest `json:"request"`
	Computed string            `json:"computed"` // decimal string at working precision
	Quality  QualityMetrics    `json:"quality"`

	// Critique is an optional presentation-only annotation produced by an
	// external model. It never influences scores or ranking.
	Critique *Critique `json:"critique,omitempty"`
}

// ItemError records a per-item failure with its original batch index.
type ItemError struct {
	Index      int       `json:"index"`
	Expression string    `json:"expression"`
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
}

// BatchSummary carries derived counts for a finished batch.
type BatchSummary struct {
	Total      int     `json:"total"`
	Successful int     `json:"successful"`
	Failed     int     `json:"failed"`
	BestScore  float64 `json:"best_score"`
}

// BatchResult is the outcome of one batch call. It is constructed once,
// handed to the caller, and never persisted by the core.
type BatchResult struct {
	Ranked  []EvaluationResult `json:"ranked"`
	Errors  []ItemError        `json:"errors"`
	Summary BatchSummary       `json:"summary"`
}

// Critique is the structured free-text commentary for one ranked result,
// produced by an external language model. All fields are prose; Unavailable
// marks a reply that was missing or unparseable.
type Critique struct {
	Accuracy       string `json:"accuracy"`
	Efficiency     string `json:"efficiency"`
	Novelty        string `json:"novelty"`
	Stability      string `json:"stability"`
	Generality     string `json:"generality"`
	Recommendation string `json:"recommendation"`
	Unavailable    bool   `json:"unavailable,omitempty"`
}

// ArchiveStatus summarizes the state of the results archive.
type ArchiveStatus struct {
	Backend string    `json:"backend"`
	Runs    int64     `json:"runs"`
	Results int64     `json:"results"`
	LastRun time.Time `json:"last_run"`
}

// NewInputShapeResult builds the batch-fatal result for a malformed
// top-level payload: zero successes and a single error entry at index -1.
func NewInputShapeResult(message string) *BatchResult {
	return &BatchResult{
		Ranked: []EvaluationResult{},
		Errors: []ItemError{{
			Index:      -1,
			Expression: "unknown",
			Kind:       InputShapeError,
			Message:    message,
		}},
		Summary: BatchSummary{},
	}
}
