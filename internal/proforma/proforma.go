// Package proforma computes a short-term-rental proforma from a set of
// financial inputs. Compute is total: degenerate arithmetic (zero rate,
// zero equity, zero price) resolves to defined values instead of failing.
package proforma

import (
	"math"

	"str-underwriter/internal/model"
)

const nightsPerYear = 365

// Compute derives the proforma for in. It does not validate ranges;
// callers are expected to run in.Validate() at the boundary.
func Compute(in model.Inputs) model.Results {
	loan := in.LoanAmount()
	equity := in.Equity()

	payment := MonthlyPayment(loan, in.InterestRate, in.TermYears)

	grossAnnual := in.NightlyRate * nightsPerYear * in.OccupancyRate
	grossMonthly := grossAnnual / 12
	opex := grossAnnual * in.ExpenseRatio
	noi := grossAnnual - opex

	cashFlow := grossMonthly - payment - (in.PropertyTax+in.Insurance)/12

	coc := 0.0
	if equity != 0 {
		coc = cashFlow * 12 / equity
	}
	capRate := 0.0
	if in.PurchasePrice != 0 {
		capRate = noi / in.PurchasePrice
	}

	return model.Results{
		GrossAnnualIncome:   Round2(grossAnnual),
		MonthlyDebtService:  Round2(payment),
		NetOperatingIncome:  Round2(noi),
		CapRatePct:          Round2(capRate * 100),
		MonthlyCashFlow:     Round2(cashFlow),
		CashOnCashReturnPct: Round2(coc * 100),
	}
}

// MonthlyPayment is the level principal-and-interest payment that amortizes
// principal over termYears at annualRate. A zero rate amortizes flat.
func MonthlyPayment(principal, annualRate float64, termYears int) float64 {
	n := float64(termYears * 12)
	if n <= 0 {
		return 0
	}
	r := annualRate / 12
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * (r * growth) / (growth - 1)
}

// Round2 rounds half away from zero to 2 decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Round1 rounds half away from zero to 1 decimal.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
