package analysis

import (
	"sort"

	"str-underwriter/internal/optimize"
)

type RankedTrial struct {
	Rank int
	optimize.Trial
}

// RankTrials sorts trials descending by monthly cash flow. Ties keep
// evaluation order. limit <= 0 returns every trial.
func RankTrials(trials []optimize.Trial, limit int) []RankedTrial {
	sorted := make([]optimize.Trial, len(trials))
	copy(sorted, trials)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Results.MonthlyCashFlow > sorted[j].Results.MonthlyCashFlow
	})
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	out := make([]RankedTrial, len(sorted))
	for i, t := range sorted {
		out[i] = RankedTrial{Rank: i + 1, Trial: t}
	}
	return out
}
