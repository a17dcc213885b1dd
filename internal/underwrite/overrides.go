package underwrite

import "str-underwriter/internal/model"

// Overrides carries caller-supplied inputs. A nil field keeps the value
// from configuration or from the property lookup.
type Overrides struct {
	PurchasePrice *float64
	LoanPct       *float64
	InterestRate  *float64
	TermYears     *int
	OccupancyRate *float64
	NightlyRate   *float64
	ExpenseRatio  *float64
	PropertyTax   *float64
	Insurance     *float64
}

// Apply returns in with every set override written over it.
func (o Overrides) Apply(in model.Inputs) model.Inputs {
	setF(&in.PurchasePrice, o.PurchasePrice)
	setF(&in.LoanPct, o.LoanPct)
	setF(&in.InterestRate, o.InterestRate)
	if o.TermYears != nil {
		in.TermYears = *o.TermYears
	}
	setF(&in.OccupancyRate, o.OccupancyRate)
	setF(&in.NightlyRate, o.NightlyRate)
	setF(&in.ExpenseRatio, o.ExpenseRatio)
	setF(&in.PropertyTax, o.PropertyTax)
	setF(&in.Insurance, o.Insurance)
	return in
}

// Merge overlays the set fields of top onto o.
func (o Overrides) Merge(top Overrides) Overrides {
	out := o
	if top.PurchasePrice != nil {
		out.PurchasePrice = top.PurchasePrice
	}
	if top.LoanPct != nil {
		out.LoanPct = top.LoanPct
	}
	if top.InterestRate != nil {
		out.InterestRate = top.InterestRate
	}
	if top.TermYears != nil {
		out.TermYears = top.TermYears
	}
	if top.OccupancyRate != nil {
		out.OccupancyRate = top.OccupancyRate
	}
	if top.NightlyRate != nil {
		out.NightlyRate = top.NightlyRate
	}
	if top.ExpenseRatio != nil {
		out.ExpenseRatio = top.ExpenseRatio
	}
	if top.PropertyTax != nil {
		out.PropertyTax = top.PropertyTax
	}
	if top.Insurance != nil {
		out.Insurance = top.Insurance
	}
	return out
}

func setF(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
