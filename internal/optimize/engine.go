package optimize

import (
	"fmt"
	"math"

	"str-underwriter/internal/model"
	"str-underwriter/internal/proforma"
)

type Engine struct {
	// RecordTrials keeps every evaluated trial on the Result.
	RecordTrials bool
}

func New() *Engine { return &Engine{} }

// Run searches the grid around base and keeps the trial with the highest
// monthly cash flow. Iteration order is price, ADR, occupancy, expense
// ratio; the first trial to reach a value wins ties.
func (e *Engine) Run(base model.Inputs) (*Result, error) {
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("base inputs: %w", err)
	}

	grid := NewGrid(base)
	res := &Result{}
	if e.RecordTrials {
		res.Trials = make([]Trial, 0, grid.Size())
	}

	bestCashFlow := math.Inf(-1)
	found := false

	for _, p := range grid.Prices {
		for _, a := range grid.NightlyRates {
			for _, o := range grid.Occupancies {
				for _, x := range grid.ExpenseRatios {
					trialInputs := base
					trialInputs.PurchasePrice = p
					trialInputs.NightlyRate = a
					trialInputs.OccupancyRate = o
					trialInputs.ExpenseRatio = x

					trial := Trial{
						Index:   res.Evaluated,
						Inputs:  trialInputs,
						Results: proforma.Compute(trialInputs),
						Price:   model.PriceOptionFor(p, base.PurchasePrice),
					}
					res.Evaluated++
					if e.RecordTrials {
						res.Trials = append(res.Trials, trial)
					}

					if trial.Results.MonthlyCashFlow > bestCashFlow {
						bestCashFlow = trial.Results.MonthlyCashFlow
						res.BestTrial = trial
						found = true
					}
				}
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("no trial produced a finite cash flow")
	}
	res.Best = Summarize(res.BestTrial)
	return res, nil
}

// Optimize runs a default engine and returns only the winning proforma.
func Optimize(base model.Inputs) (Optimized, error) {
	res, err := New().Run(base)
	if err != nil {
		return Optimized{}, err
	}
	return res.Best, nil
}

// Summarize attaches the trial's perturbed assumptions to its results,
// rounded for presentation.
func Summarize(t Trial) Optimized {
	return Optimized{
		Results:         t.Results,
		ADR:             proforma.Round2(t.Inputs.NightlyRate),
		OccupancyPct:    proforma.Round1(t.Inputs.OccupancyRate * 100),
		ExpenseRatioPct: proforma.Round1(t.Inputs.ExpenseRatio * 100),
		PurchasePrice:   proforma.Round2(t.Inputs.PurchasePrice),
	}
}
