package proforma

import (
	"math"
	"testing"

	"str-underwriter/internal/model"
)

func scenario() model.Inputs {
	return model.Inputs{
		PurchasePrice: 500000,
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

func TestComputeScenario(t *testing.T) {
	got := Compute(scenario())
	want := model.Results{
		GrossAnnualIncome:   71175.00,
		MonthlyDebtService:  2494.88,
		NetOperatingIncome:  49822.50,
		CapRatePct:          9.96,
		MonthlyCashFlow:     2786.37,
		CashOnCashReturnPct: 26.75,
	}
	if got != want {
		t.Fatalf("Compute: got %+v, want %+v", got, want)
	}
}

func TestComputeDeterministic(t *testing.T) {
	in := scenario()
	a := Compute(in)
	b := Compute(in)
	if a != b {
		t.Fatalf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestMonthlyPaymentAmortizes(t *testing.T) {
	cases := []struct {
		principal float64
		rate      float64
		years     int
	}{
		{375000, 0.07, 30},
		{100000, 0.035, 15},
		{50000, 0.12, 5},
		{1, 0.001, 1},
	}
	for _, tc := range cases {
		p := MonthlyPayment(tc.principal, tc.rate, tc.years)
		if p <= 0 || math.IsInf(p, 0) || math.IsNaN(p) {
			t.Errorf("MonthlyPayment(%v, %v, %d): got %v, want positive finite", tc.principal, tc.rate, tc.years, p)
			continue
		}
		if total := p * float64(tc.years*12); total < tc.principal {
			t.Errorf("MonthlyPayment(%v, %v, %d): total paid %v < principal", tc.principal, tc.rate, tc.years, total)
		}
	}
}

func TestMonthlyPaymentZeroRate(t *testing.T) {
	in := scenario()
	in.InterestRate = 0
	got := Compute(in)
	want := Round2(in.LoanAmount() / float64(in.TermYears*12))
	if got.MonthlyDebtService != want {
		t.Errorf("MonthlyDebtService: got %v, want %v", got.MonthlyDebtService, want)
	}
	if p := MonthlyPayment(1200, 0, 1); p != 100 {
		t.Errorf("MonthlyPayment(1200, 0, 1): got %v, want 100", p)
	}
}

func TestComputeZeroEquity(t *testing.T) {
	in := scenario()
	in.LoanPct = 1
	got := Compute(in)
	if got.CashOnCashReturnPct != 0 {
		t.Errorf("CashOnCashReturnPct: got %v, want 0", got.CashOnCashReturnPct)
	}
	if math.IsNaN(got.MonthlyCashFlow) || math.IsInf(got.MonthlyCashFlow, 0) {
		t.Errorf("MonthlyCashFlow: got %v, want finite", got.MonthlyCashFlow)
	}
}

func TestComputeZeroPrice(t *testing.T) {
	in := scenario()
	in.PurchasePrice = 0
	got := Compute(in)
	if got.CapRatePct != 0 || got.CashOnCashReturnPct != 0 {
		t.Errorf("zero price: got cap %v coc %v, want 0 and 0", got.CapRatePct, got.CashOnCashReturnPct)
	}
}

func TestComputeCashOnCashMatchesCashFlow(t *testing.T) {
	in := scenario()
	in.LoanPct = 0.5
	got := Compute(in)
	if got.CashOnCashReturnPct <= 0 {
		t.Fatalf("CashOnCashReturnPct: got %v, want > 0", got.CashOnCashReturnPct)
	}
	implied := got.MonthlyCashFlow * 12 / in.Equity() * 100
	if math.Abs(implied-got.CashOnCashReturnPct) > 0.01 {
		t.Errorf("CashOnCashReturnPct: got %v, implied by cash flow %v", got.CashOnCashReturnPct, implied)
	}
}

func TestRound(t *testing.T) {
	if got := Round2(2494.8812); got != 2494.88 {
		t.Errorf("Round2: got %v, want 2494.88", got)
	}
	if got := Round1(71.49999); got != 71.5 {
		t.Errorf("Round1: got %v, want 71.5", got)
	}
}
