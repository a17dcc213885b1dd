// Package underwrite runs the full pipeline shared by the API and the CLI:
// optional listing lookup, input resolution, the original proforma and the
// grid-search optimization. It returns either a complete Report or an error.
package underwrite

import (
	"context"
	"fmt"
	"log"

	"str-underwriter/internal/analysis"
	"str-underwriter/internal/config"
	"str-underwriter/internal/data"
	"str-underwriter/internal/model"
	"str-underwriter/internal/optimize"
	"str-underwriter/internal/proforma"
)

// LookupFunc resolves a listing URL to property data.
type LookupFunc func(ctx context.Context, apiKey, listingURL string) (*model.Property, error)

// ZillowLookup builds a LookupFunc backed by data.ZillowClient.
// An empty baseURL uses the RapidAPI host.
func ZillowLookup(baseURL string) LookupFunc {
	return func(ctx context.Context, apiKey, listingURL string) (*model.Property, error) {
		return data.NewZillowClient(apiKey, baseURL).FetchByURL(ctx, listingURL)
	}
}

type Service struct {
	cfg    *config.Config
	lookup LookupFunc
}

// NewService creates a service. A nil cfg uses config.Default().
func NewService(cfg *config.Config, lookup LookupFunc) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Service{cfg: cfg, lookup: lookup}
}

// Request describes one underwriting run.
type Request struct {
	// ListingURL is looked up only when Overrides.PurchasePrice is nil.
	ListingURL string
	APIKey     string

	Overrides Overrides

	// ROITarget is a cash-on-cash target in percent.
	ROITarget *float64
	// Top is how many ranked trials to include (0 = none).
	Top int
	// KeepTrials includes every evaluated trial in the report.
	KeepTrials bool
}

// Target reports whether a cash-on-cash goal is met.
type Target struct {
	CashOnCashPct  float64
	OriginalMeets  bool
	OptimizedMeets bool
	// GapPct is target minus optimized cash-on-cash; <= 0 when met.
	GapPct float64
}

type Report struct {
	Property *model.Property

	Inputs      model.Inputs
	Original    model.Results
	Optimized   optimize.Optimized
	Assumptions []string

	Target *Target
	Spread analysis.CashFlowSpread

	Evaluated int
	TopTrials []analysis.RankedTrial
	Trials    []optimize.Trial
}

// Run executes the pipeline. Errors from each stage are returned as-is:
// data.ErrNoZPID, *data.LookupError, or an error wrapping model.ErrInvalidInput.
func (s *Service) Run(ctx context.Context, req Request) (*Report, error) {
	base, prop, err := s.ResolveInputs(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.evaluate(base, prop, req)
}

// ResolveInputs returns the base inputs a request would be evaluated with.
func (s *Service) ResolveInputs(ctx context.Context, req Request) (model.Inputs, *model.Property, error) {
	return s.resolve(ctx, req.ListingURL, req.APIKey, req.Overrides)
}

func (s *Service) resolve(ctx context.Context, listingURL, apiKey string, o Overrides) (model.Inputs, *model.Property, error) {
	var prop *model.Property
	if listingURL != "" && o.PurchasePrice == nil {
		p, err := s.fetch(ctx, listingURL, apiKey)
		if err != nil {
			return model.Inputs{}, nil, err
		}
		prop = p
	}

	base := o.Apply(s.baseFor(prop))
	if err := base.Validate(); err != nil {
		return model.Inputs{}, nil, err
	}
	return base, prop, nil
}

func (s *Service) fetch(ctx context.Context, listingURL, apiKey string) (*model.Property, error) {
	if s.lookup == nil {
		return nil, fmt.Errorf("property lookup is not configured")
	}
	p, err := s.lookup(ctx, apiKey, listingURL)
	if err != nil {
		return nil, err
	}
	log.Printf("[Underwrite] Listing zpid=%s price=%.2f assessed=%.2f", p.ZPID, p.Price, p.TaxAssessedValue)
	return p, nil
}

// baseFor starts from configured defaults and, when a listing is known,
// takes its price and the tax estimated from its assessment.
func (s *Service) baseFor(prop *model.Property) model.Inputs {
	if prop == nil {
		return s.cfg.ManualInputs()
	}
	return s.cfg.BaseInputs(prop.Price, prop.TaxAssessedValue)
}

func (s *Service) evaluate(base model.Inputs, prop *model.Property, req Request) (*Report, error) {
	engine := &optimize.Engine{RecordTrials: true}
	res, err := engine.Run(base)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Property:    prop,
		Inputs:      base,
		Original:    proforma.Compute(base),
		Optimized:   res.Best,
		Assumptions: optimize.Assumptions(base, res.Best),
		Spread:      analysis.ComputeSpread(res.Trials),
		Evaluated:   res.Evaluated,
	}
	if req.ROITarget != nil {
		rep.Target = evaluateTarget(*req.ROITarget, rep.Original, rep.Optimized)
		rep.Assumptions = append(rep.Assumptions, targetAssumption(rep.Target))
	}
	if req.Top > 0 {
		rep.TopTrials = analysis.RankTrials(res.Trials, req.Top)
	}
	if req.KeepTrials {
		rep.Trials = res.Trials
	}
	return rep, nil
}

func evaluateTarget(target float64, original model.Results, optimized optimize.Optimized) *Target {
	return &Target{
		CashOnCashPct:  target,
		OriginalMeets:  original.CashOnCashReturnPct >= target,
		OptimizedMeets: optimized.CashOnCashReturnPct >= target,
		GapPct:         proforma.Round2(target - optimized.CashOnCashReturnPct),
	}
}

func targetAssumption(t *Target) string {
	if t.OptimizedMeets {
		return fmt.Sprintf("The optimized scenario meets the %.2f%% cash-on-cash target", t.CashOnCashPct)
	}
	return fmt.Sprintf("The optimized scenario falls %.2f points short of the %.2f%% cash-on-cash target", t.GapPct, t.CashOnCashPct)
}

// Variation is a named set of overrides evaluated against a shared base.
type Variation struct {
	Name      string
	Overrides Overrides
}

type ComparisonResult struct {
	Name   string
	Report *Report
}

// Compare looks the listing up once, then runs each variation on top of the
// base request. Variations whose inputs are invalid are skipped; if none
// survive, the first skip reason is returned.
func (s *Service) Compare(ctx context.Context, req Request, variations []Variation) ([]ComparisonResult, error) {
	var prop *model.Property
	if req.ListingURL != "" && req.Overrides.PurchasePrice == nil {
		p, err := s.fetch(ctx, req.ListingURL, req.APIKey)
		if err != nil {
			return nil, err
		}
		prop = p
	}

	var firstErr error
	out := make([]ComparisonResult, 0, len(variations))
	for _, v := range variations {
		base := req.Overrides.Merge(v.Overrides).Apply(s.baseFor(prop))
		rep, err := s.evaluateVariation(base, prop, req.ROITarget)
		if err != nil {
			log.Printf("[Underwrite] Skipping variation %q: %v", v.Name, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("variation %q: %w", v.Name, err)
			}
			continue
		}
		out = append(out, ComparisonResult{Name: v.Name, Report: rep})
	}
	if len(out) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (s *Service) evaluateVariation(base model.Inputs, prop *model.Property, target *float64) (*Report, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return s.evaluate(base, prop, Request{ROITarget: target})
}
