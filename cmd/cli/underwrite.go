package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"str-underwriter/internal/data"
	"str-underwriter/internal/model"
	"str-underwriter/internal/optimize"
	"str-underwriter/internal/underwrite"
)

type underwriteFlags struct {
	url          string
	apiKey       string
	propertyFile string
	zillowURL    string

	price        float64
	loanPct      float64
	rate         float64
	term         int
	occupancyPct float64
	adr          float64
	expenseRatio float64
	propertyTax  float64
	insurance    float64

	roiTarget float64
	top       int
	outPath   string
}

func newUnderwriteCmd(a *app) *cobra.Command {
	f := &underwriteFlags{}
	cmd := &cobra.Command{
		Use:   "underwrite",
		Short: "Compute the original and optimized proforma for a listing",
		Example: `  strcli underwrite --url https://www.zillow.com/homedetails/x/2077829465_zpid/ --adr 300 --occupancy 65
  strcli underwrite --property examples/listing.json --adr 275 --top 5 --out results/trials.csv
  strcli underwrite --price 500000 --adr 300 --occupancy 65 --roi-target 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnderwrite(cmd.Context(), cmd, a, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.url, "url", "", "Zillow listing URL (…/<zpid>_zpid/)")
	fl.StringVar(&f.apiKey, "api-key", os.Getenv("RAPIDAPI_KEY"), "RapidAPI key (default $RAPIDAPI_KEY)")
	fl.StringVar(&f.propertyFile, "property", "", "Saved listing JSON to use instead of a live lookup")
	fl.StringVar(&f.zillowURL, "zillow-base-url", "", "Override the lookup endpoint")

	fl.Float64Var(&f.price, "price", 0, "Purchase price in $ (overrides the listing price)")
	fl.Float64Var(&f.loanPct, "loan-pct", 0, "Financed share of the price, 0..1")
	fl.Float64Var(&f.rate, "rate", 0, "Annual interest rate as a fraction (0.07 = 7%)")
	fl.IntVar(&f.term, "term", 0, "Loan term in years")
	fl.Float64Var(&f.occupancyPct, "occupancy", 0, "Occupancy rate in percent (e.g. 65)")
	fl.Float64Var(&f.adr, "adr", 0, "Average daily rate in $")
	fl.Float64Var(&f.expenseRatio, "expense-ratio", 0, "Operating expenses as a share of gross income, 0..1")
	fl.Float64Var(&f.propertyTax, "property-tax", 0, "Annual property tax in $ (overrides the assessment estimate)")
	fl.Float64Var(&f.insurance, "insurance", 0, "Annual insurance in $")

	fl.Float64Var(&f.roiTarget, "roi-target", 0, "Cash-on-cash target in percent")
	fl.IntVar(&f.top, "top", 0, "Print the N best trials")
	fl.StringVar(&f.outPath, "out", "", "Write every trial to this CSV path")
	return cmd
}

// overridesFromFlags keeps only the flags the user actually set.
func overridesFromFlags(cmd *cobra.Command, f *underwriteFlags) underwrite.Overrides {
	changed := cmd.Flags().Changed
	var o underwrite.Overrides
	if changed("price") {
		o.PurchasePrice = &f.price
	}
	if changed("loan-pct") {
		o.LoanPct = &f.loanPct
	}
	if changed("rate") {
		o.InterestRate = &f.rate
	}
	if changed("term") {
		o.TermYears = &f.term
	}
	if changed("occupancy") {
		occ := f.occupancyPct / 100
		o.OccupancyRate = &occ
	}
	if changed("adr") {
		o.NightlyRate = &f.adr
	}
	if changed("expense-ratio") {
		o.ExpenseRatio = &f.expenseRatio
	}
	if changed("property-tax") {
		o.PropertyTax = &f.propertyTax
	}
	if changed("insurance") {
		o.Insurance = &f.insurance
	}
	return o
}

func runUnderwrite(ctx context.Context, cmd *cobra.Command, a *app, f *underwriteFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.url != "" && f.propertyFile != "" {
		return fmt.Errorf("use either --url or --property, not both")
	}

	lookup := underwrite.ZillowLookup(f.zillowURL)
	listing := f.url
	if f.propertyFile != "" {
		// The saved file stands in for the lookup; its path doubles as the listing reference.
		path := f.propertyFile
		lookup = func(context.Context, string, string) (*model.Property, error) {
			return data.LoadPropertyJSON(path)
		}
		listing = path
	}

	req := underwrite.Request{
		ListingURL: listing,
		APIKey:     f.apiKey,
		Overrides:  overridesFromFlags(cmd, f),
		Top:        f.top,
		KeepTrials: f.outPath != "",
	}
	if cmd.Flags().Changed("roi-target") {
		req.ROITarget = &f.roiTarget
	}

	rep, err := underwrite.NewService(a.cfg, lookup).Run(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printReport(out, rep)

	if f.outPath != "" {
		if dir := filepath.Dir(f.outPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		if err := optimize.WriteTrialsCSV(f.outPath, rep.Trials); err != nil {
			return fmt.Errorf("write trials: %w", err)
		}
		fmt.Fprintf(out, "\nWrote %d trials to %s\n", len(rep.Trials), f.outPath)
	}
	return nil
}

func printReport(w io.Writer, rep *underwrite.Report) {
	if p := rep.Property; p != nil {
		printProperty(w, p)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Original Proforma:")
	printResults(w, rep.Original)

	fmt.Fprintln(w, "\nOptimized Proforma:")
	printResults(w, rep.Optimized.Results)
	fmt.Fprintf(w, "  %-24s $%.2f\n", "ADR", rep.Optimized.ADR)
	fmt.Fprintf(w, "  %-24s %.1f%%\n", "Occupancy Rate", rep.Optimized.OccupancyPct)
	fmt.Fprintf(w, "  %-24s %.1f%%\n", "Expense Ratio", rep.Optimized.ExpenseRatioPct)
	fmt.Fprintf(w, "  %-24s $%.2f\n", "Purchase Price", rep.Optimized.PurchasePrice)

	fmt.Fprintln(w, "\nOptimization Used These Assumptions:")
	for _, s := range rep.Assumptions {
		fmt.Fprintf(w, "- %s\n", s)
	}

	fmt.Fprintf(w, "\nCash flow across %d trials: min $%.2f, p05 $%.2f, p95 $%.2f, max $%.2f (%.0f%% positive)\n",
		rep.Spread.Count, rep.Spread.Min, rep.Spread.P05, rep.Spread.P95, rep.Spread.Max, rep.Spread.PositiveShare*100)

	if len(rep.TopTrials) > 0 {
		fmt.Fprintf(w, "\n%-4s %-10s %-12s %-8s %-8s %-8s %-12s %-8s\n", "rank", "price", "amount", "adr", "occ%", "exp%", "cashflow$", "coc%")
		for _, t := range rep.TopTrials {
			fmt.Fprintf(w, "%-4d %-10s %-12.2f %-8.2f %-8.1f %-8.1f %-12.2f %-8.2f\n",
				t.Rank,
				t.Price,
				t.Inputs.PurchasePrice,
				t.Inputs.NightlyRate,
				t.Inputs.OccupancyRate*100,
				t.Inputs.ExpenseRatio*100,
				t.Results.MonthlyCashFlow,
				t.Results.CashOnCashReturnPct,
			)
		}
	}
}

func printResults(w io.Writer, r model.Results) {
	fmt.Fprintf(w, "  %-24s $%.2f\n", "Gross Annual Income", r.GrossAnnualIncome)
	fmt.Fprintf(w, "  %-24s $%.2f\n", "Monthly P&I", r.MonthlyDebtService)
	fmt.Fprintf(w, "  %-24s $%.2f\n", "NOI", r.NetOperatingIncome)
	fmt.Fprintf(w, "  %-24s %.2f%%\n", "Cap Rate", r.CapRatePct)
	fmt.Fprintf(w, "  %-24s $%.2f\n", "Cash Flow (Monthly)", r.MonthlyCashFlow)
	fmt.Fprintf(w, "  %-24s %.2f%%\n", "Cash-on-Cash Return", r.CashOnCashReturnPct)
}
