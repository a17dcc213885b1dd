package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by every validation failure so callers can
// tell bad inputs apart from lookup or I/O errors.
var ErrInvalidInput = errors.New("invalid input")

// Inputs is the canonical set of financial assumptions for one proforma.
// Units:
// - PurchasePrice, NightlyRate, PropertyTax, Insurance: $ (taxes and insurance are annual)
// - LoanPct, OccupancyRate, ExpenseRatio: fraction 0..1
// - InterestRate: annual fraction (0.07 = 7%)
// - TermYears: whole years
type Inputs struct {
	PurchasePrice float64
	LoanPct       float64
	InterestRate  float64
	TermYears     int
	OccupancyRate float64
	NightlyRate   float64
	ExpenseRatio  float64
	PropertyTax   float64
	Insurance     float64
}

// DefaultInputs returns the assumptions used when a caller leaves a field out.
func DefaultInputs() Inputs {
	return Inputs{
		PurchasePrice: 0,
		LoanPct:       0.75,
		InterestRate:  0.07,
		TermYears:     30,
		OccupancyRate: 0.65,
		NightlyRate:   300,
		ExpenseRatio:  0.3,
		PropertyTax:   6000,
		Insurance:     1800,
	}
}

// Validate checks domain bounds. Occupancy is range-checked but never clamped.
func (in Inputs) Validate() error {
	for name, v := range map[string]float64{
		"purchase_price": in.PurchasePrice,
		"loan_pct":       in.LoanPct,
		"interest_rate":  in.InterestRate,
		"occupancy_rate": in.OccupancyRate,
		"nightly_rate":   in.NightlyRate,
		"expense_ratio":  in.ExpenseRatio,
		"property_tax":   in.PropertyTax,
		"insurance":      in.Insurance,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidInput, name)
		}
	}
	if in.PurchasePrice <= 0 {
		return fmt.Errorf("%w: purchase_price must be > 0", ErrInvalidInput)
	}
	if in.LoanPct < 0 || in.LoanPct > 1 {
		return fmt.Errorf("%w: loan_pct must be in [0, 1]", ErrInvalidInput)
	}
	if in.InterestRate < 0 {
		return fmt.Errorf("%w: interest_rate must be >= 0", ErrInvalidInput)
	}
	if in.TermYears <= 0 {
		return fmt.Errorf("%w: term_years must be > 0", ErrInvalidInput)
	}
	if in.OccupancyRate < 0 || in.OccupancyRate > 1 {
		return fmt.Errorf("%w: occupancy_rate must be in [0, 1]", ErrInvalidInput)
	}
	if in.NightlyRate <= 0 {
		return fmt.Errorf("%w: nightly_rate must be > 0", ErrInvalidInput)
	}
	if in.ExpenseRatio < 0 || in.ExpenseRatio > 1 {
		return fmt.Errorf("%w: expense_ratio must be in [0, 1]", ErrInvalidInput)
	}
	if in.PropertyTax < 0 {
		return fmt.Errorf("%w: property_tax must be >= 0", ErrInvalidInput)
	}
	if in.Insurance < 0 {
		return fmt.Errorf("%w: insurance must be >= 0", ErrInvalidInput)
	}
	return nil
}

// LoanAmount is the financed share of the purchase price.
func (in Inputs) LoanAmount() float64 {
	return in.PurchasePrice * in.LoanPct
}

// Equity is the cash invested at purchase.
func (in Inputs) Equity() float64 {
	return in.PurchasePrice - in.LoanAmount()
}

// Results is the derived proforma. Every field is rounded to 2 decimals.
type Results struct {
	GrossAnnualIncome   float64
	MonthlyDebtService  float64
	NetOperatingIncome  float64
	CapRatePct          float64
	MonthlyCashFlow     float64
	CashOnCashReturnPct float64
}
