package optimize

import (
	"str-underwriter/internal/model"
	"str-underwriter/internal/proforma"
)

// Grid sizing. Trials per run = len(prices) * Points^3.
const (
	Points = 5

	rateSpread     = 0.10
	priceDiscount  = 0.05
	minExpenseRate = 0.25
	maxExpenseRate = 0.45
)

// Grid holds the candidate values for each perturbed input.
type Grid struct {
	Prices        []float64
	NightlyRates  []float64
	Occupancies   []float64
	ExpenseRatios []float64
}

// NewGrid builds the search space around base. ADR and occupancy span
// ±10% of the base value; expense ratio spans a fixed absolute band.
func NewGrid(base model.Inputs) Grid {
	return Grid{
		Prices: []float64{
			base.PurchasePrice,
			DiscountedPrice(base.PurchasePrice),
		},
		NightlyRates:  Linspace(base.NightlyRate*(1-rateSpread), base.NightlyRate*(1+rateSpread), Points),
		Occupancies:   Linspace(base.OccupancyRate*(1-rateSpread), base.OccupancyRate*(1+rateSpread), Points),
		ExpenseRatios: Linspace(minExpenseRate, maxExpenseRate, Points),
	}
}

// Size is the number of trials the grid produces.
func (g Grid) Size() int {
	return len(g.Prices) * len(g.NightlyRates) * len(g.Occupancies) * len(g.ExpenseRatios)
}

// DiscountedPrice is the negotiated-price candidate, rounded to cents.
func DiscountedPrice(price float64) float64 {
	return proforma.Round2(price * (1 - priceDiscount))
}

// Linspace returns n evenly spaced values over [lo, hi], endpoints included.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = lo + float64(i)*step
	}
	// pin the endpoint so it is exactly hi
	out[n-1] = hi
	return out
}
