package optimize

import (
	"str-underwriter/internal/model"
)

// Trial is one evaluated point of the grid.
type Trial struct {
	Index int

	Inputs  model.Inputs
	Results model.Results

	Price model.PriceOption
}

// Optimized is the winning proforma plus the assumptions that produced it.
type Optimized struct {
	model.Results

	ADR             float64
	OccupancyPct    float64
	ExpenseRatioPct float64
	PurchasePrice   float64
}

type Result struct {
	Best      Optimized
	BestTrial Trial

	// Evaluated counts every trial, recorded or not.
	Evaluated int
	// Trials is populated only when Engine.RecordTrials is set.
	Trials []Trial
}
