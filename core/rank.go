package core

import (
	"sort"

	"github.com/quarkw/constfit/schema"
)

// RankResults sorts results by their overall score in descending order and
// returns the top 'limit' results. Equal scores keep their submission order
// (lower index first), so ranking is deterministic across runs. A limit of
// zero or less returns the full sorted slice.
func RankResults(results []schema.EvaluationResult, limit int) []schema.EvaluationResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Quality.OverallScore != results[j].Quality.OverallScore {
			return results[i].Quality.OverallScore > results[j].Quality.OverallScore
		}
		return results[i].Index < results[j].Index
	})
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
