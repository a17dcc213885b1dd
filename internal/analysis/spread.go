package analysis

import (
	"math"
	"sort"

	"str-underwriter/internal/optimize"
)

// CashFlowSpread summarizes how monthly cash flow varies across a grid.
// It is the quick answer to "how sensitive is this deal to the assumptions".
type CashFlowSpread struct {
	Count int

	Min  float64
	Max  float64
	Mean float64
	P05  float64
	P95  float64

	SpreadP95P05 float64

	// PositiveShare is the fraction of trials with cash flow > 0.
	PositiveShare float64
}

func ComputeSpread(trials []optimize.Trial) CashFlowSpread {
	s := CashFlowSpread{}
	if len(trials) == 0 {
		return s
	}
	s.Count = len(trials)

	sum := 0.0
	positive := 0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(trials))
	for _, t := range trials {
		v := t.Results.MonthlyCashFlow
		vals = append(vals, v)
		sum += v
		if v > 0 {
			positive++
		}
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	s.Min = minv
	s.Max = maxv
	s.Mean = sum / float64(len(vals))
	s.P05 = percentileSorted(vals, 0.05)
	s.P95 = percentileSorted(vals, 0.95)
	s.SpreadP95P05 = s.P95 - s.P05
	s.PositiveShare = float64(positive) / float64(len(vals))
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
