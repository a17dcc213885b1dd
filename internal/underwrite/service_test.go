package underwrite

import (
	"context"
	"errors"
	"testing"

	"str-underwriter/internal/config"
	"str-underwriter/internal/data"
	"str-underwriter/internal/model"
)

func f(v float64) *float64 { return &v }

type stubLookup struct {
	calls int
	prop  *model.Property
	err   error
}

func (s *stubLookup) fn() LookupFunc {
	return func(ctx context.Context, apiKey, listingURL string) (*model.Property, error) {
		s.calls++
		if s.err != nil {
			return nil, s.err
		}
		if _, err := data.ExtractZPID(listingURL); err != nil {
			return nil, err
		}
		return s.prop, nil
	}
}

func TestRunManualInputs(t *testing.T) {
	svc := NewService(nil, nil)
	rep, err := svc.Run(context.Background(), Request{
		Overrides: Overrides{PurchasePrice: f(500000)},
		Top:       3,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Property != nil {
		t.Errorf("Property: got %+v, want nil", rep.Property)
	}
	if rep.Inputs.PropertyTax != 6000 || rep.Inputs.Insurance != 1800 {
		t.Errorf("Inputs: got %+v", rep.Inputs)
	}
	if rep.Original.MonthlyCashFlow != 2786.37 {
		t.Errorf("Original.MonthlyCashFlow: got %v, want 2786.37", rep.Original.MonthlyCashFlow)
	}
	if rep.Optimized.MonthlyCashFlow != 4156.67 {
		t.Errorf("Optimized.MonthlyCashFlow: got %v, want 4156.67", rep.Optimized.MonthlyCashFlow)
	}
	if rep.Evaluated != 250 || rep.Spread.Count != 250 {
		t.Errorf("Evaluated/Spread.Count: got %d/%d, want 250", rep.Evaluated, rep.Spread.Count)
	}
	if len(rep.TopTrials) != 3 || rep.TopTrials[0].Results.MonthlyCashFlow != rep.Optimized.MonthlyCashFlow {
		t.Errorf("TopTrials: got %+v", rep.TopTrials)
	}
	if rep.Trials != nil {
		t.Errorf("Trials: got %d, want none", len(rep.Trials))
	}
	if len(rep.Assumptions) != 4 {
		t.Errorf("Assumptions: got %v", rep.Assumptions)
	}
}

func TestRunWithLookup(t *testing.T) {
	stub := &stubLookup{prop: &model.Property{ZPID: "9", Price: 400000, TaxAssessedValue: 300000}}
	svc := NewService(config.Default(), stub.fn())
	rep, err := svc.Run(context.Background(), Request{
		ListingURL: "https://www.zillow.com/homedetails/a/9_zpid/",
		APIKey:     "k",
		Overrides:  Overrides{NightlyRate: f(250), OccupancyRate: f(0.7)},
		KeepTrials: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("lookup calls: got %d, want 1", stub.calls)
	}
	if rep.Inputs.PurchasePrice != 400000 || rep.Inputs.PropertyTax != 4500 {
		t.Errorf("Inputs: got price %v tax %v, want 400000 and 4500", rep.Inputs.PurchasePrice, rep.Inputs.PropertyTax)
	}
	if rep.Inputs.NightlyRate != 250 || rep.Inputs.OccupancyRate != 0.7 {
		t.Errorf("overrides not applied: %+v", rep.Inputs)
	}
	if len(rep.Trials) != 250 {
		t.Errorf("Trials: got %d, want 250", len(rep.Trials))
	}
}

func TestRunExplicitPriceSkipsLookup(t *testing.T) {
	stub := &stubLookup{err: errors.New("should not be called")}
	svc := NewService(nil, stub.fn())
	_, err := svc.Run(context.Background(), Request{
		ListingURL: "https://www.zillow.com/homedetails/a/9_zpid/",
		Overrides:  Overrides{PurchasePrice: f(300000)},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("lookup calls: got %d, want 0", stub.calls)
	}
}

func TestRunStageErrors(t *testing.T) {
	lookupErr := &data.LookupError{StatusCode: 403, Code: "INVALID_API_KEY", Message: "bad key"}

	cases := []struct {
		name  string
		stub  *stubLookup
		req   Request
		check func(error) bool
	}{
		{
			name:  "unparseable url",
			stub:  &stubLookup{prop: &model.Property{Price: 1}},
			req:   Request{ListingURL: "https://www.zillow.com/homes/Austin"},
			check: func(err error) bool { return errors.Is(err, data.ErrNoZPID) },
		},
		{
			name: "lookup failure",
			stub: &stubLookup{err: lookupErr},
			req:  Request{ListingURL: "https://www.zillow.com/homedetails/a/9_zpid/"},
			check: func(err error) bool {
				var lerr *data.LookupError
				return errors.As(err, &lerr) && lerr.Code == "INVALID_API_KEY"
			},
		},
		{
			name:  "missing price",
			stub:  &stubLookup{},
			req:   Request{},
			check: func(err error) bool { return errors.Is(err, model.ErrInvalidInput) },
		},
		{
			name:  "negative occupancy",
			stub:  &stubLookup{},
			req:   Request{Overrides: Overrides{PurchasePrice: f(1), OccupancyRate: f(-0.1)}},
			check: func(err error) bool { return errors.Is(err, model.ErrInvalidInput) },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep, err := NewService(nil, tc.stub.fn()).Run(context.Background(), tc.req)
			if rep != nil {
				t.Errorf("partial report returned: %+v", rep)
			}
			if !tc.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRunTarget(t *testing.T) {
	svc := NewService(nil, nil)
	rep, err := svc.Run(context.Background(), Request{
		Overrides: Overrides{PurchasePrice: f(500000)},
		ROITarget: f(30),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Target == nil {
		t.Fatal("Target: got nil")
	}
	if rep.Target.OriginalMeets || !rep.Target.OptimizedMeets {
		t.Errorf("Target: got %+v, want original miss and optimized hit", rep.Target)
	}
	if rep.Target.GapPct != -12 {
		t.Errorf("GapPct: got %v, want -12", rep.Target.GapPct)
	}
	if len(rep.Assumptions) != 5 {
		t.Errorf("Assumptions: got %v", rep.Assumptions)
	}
}

func TestCompare(t *testing.T) {
	stub := &stubLookup{prop: &model.Property{ZPID: "9", Price: 400000}}
	svc := NewService(nil, stub.fn())
	results, err := svc.Compare(context.Background(),
		Request{ListingURL: "https://www.zillow.com/homedetails/a/9_zpid/", APIKey: "k"},
		[]Variation{
			{Name: "conventional"},
			{Name: "all cash", Overrides: Overrides{LoanPct: f(0)}},
			{Name: "broken", Overrides: Overrides{ExpenseRatio: f(2)}},
		})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("lookup calls: got %d, want 1", stub.calls)
	}
	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2 (invalid variation skipped)", len(results))
	}
	if results[1].Name != "all cash" || results[1].Report.Original.MonthlyDebtService != 0 {
		t.Errorf("all cash variation: got %+v", results[1].Report.Original)
	}
	if results[0].Report.Original.MonthlyCashFlow >= results[1].Report.Original.MonthlyCashFlow {
		t.Errorf("leveraged cash flow %v should be below all-cash %v",
			results[0].Report.Original.MonthlyCashFlow, results[1].Report.Original.MonthlyCashFlow)
	}
}

func TestCompareAllVariationsInvalid(t *testing.T) {
	svc := NewService(nil, nil)
	results, err := svc.Compare(context.Background(), Request{},
		[]Variation{
			{Name: "no price", Overrides: Overrides{NightlyRate: f(300)}},
			{Name: "bad expense", Overrides: Overrides{PurchasePrice: f(500000), ExpenseRatio: f(2)}},
		})
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("Compare: got err %v, want ErrInvalidInput", err)
	}
	if results != nil {
		t.Errorf("results: got %d, want none", len(results))
	}
}

func TestResolveInputs(t *testing.T) {
	stub := &stubLookup{prop: &model.Property{ZPID: "9", Price: 400000, TaxAssessedValue: 200000}}
	svc := NewService(nil, stub.fn())
	in, prop, err := svc.ResolveInputs(context.Background(), Request{
		ListingURL: "https://www.zillow.com/homedetails/a/9_zpid/",
		APIKey:     "k",
		Overrides:  Overrides{NightlyRate: f(250)},
	})
	if err != nil {
		t.Fatalf("ResolveInputs: %v", err)
	}
	if prop == nil || prop.ZPID != "9" {
		t.Fatalf("property: got %+v", prop)
	}
	if in.PurchasePrice != 400000 || in.NightlyRate != 250 || in.PropertyTax != 3000 {
		t.Errorf("inputs: got %+v", in)
	}
}

func TestOverridesMerge(t *testing.T) {
	years := 15
	base := Overrides{NightlyRate: f(200), InterestRate: f(0.06)}
	got := base.Merge(Overrides{InterestRate: f(0.05), TermYears: &years})
	if *got.NightlyRate != 200 || *got.InterestRate != 0.05 || *got.TermYears != 15 {
		t.Errorf("Merge: got %+v", got)
	}
	if *base.InterestRate != 0.06 {
		t.Errorf("Merge mutated receiver")
	}
}
