package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"str-underwriter/internal/data"
	"str-underwriter/internal/model"
)

func newLookupCmd(a *app) *cobra.Command {
	var apiKey, baseURL string
	cmd := &cobra.Command{
		Use:   "lookup <listing-url>",
		Short: "Fetch and print a listing's key fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zpid, err := data.ExtractZPID(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted ZPID: %s\n", zpid)

			p, err := data.NewZillowClient(apiKey, baseURL).FetchProperty(cmd.Context(), zpid)
			if err != nil {
				return err
			}
			printProperty(cmd.OutOrStdout(), p)
			tax := p.AnnualPropertyTax(a.cfg.Tax.Rate, a.cfg.Tax.DefaultAssessedValue)
			fmt.Fprintf(cmd.OutOrStdout(), "  %-24s $%.2f\n", "Estimated Annual Tax", tax)
			return nil
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("RAPIDAPI_KEY"), "RapidAPI key (default $RAPIDAPI_KEY)")
	cmd.Flags().StringVar(&baseURL, "zillow-base-url", "", "Override the lookup endpoint")
	return cmd
}

func printProperty(w io.Writer, p *model.Property) {
	fmt.Fprintln(w, "Listing:")
	fmt.Fprintf(w, "  %-24s %s\n", "ZPID", orNA(p.ZPID))
	fmt.Fprintf(w, "  %-24s %s\n", "Address", orNA(p.Address))
	fmt.Fprintf(w, "  %-24s $%.2f\n", "Price", p.Price)
	fmt.Fprintf(w, "  %-24s %g\n", "Bedrooms", p.Bedrooms)
	fmt.Fprintf(w, "  %-24s %g\n", "Bathrooms", p.Bathrooms)
	fmt.Fprintf(w, "  %-24s %g\n", "Living Area", p.LivingArea)
	fmt.Fprintf(w, "  %-24s %g\n", "Property Tax Rate", p.PropertyTaxRate)
	fmt.Fprintf(w, "  %-24s $%.2f\n", "HOA Fee", p.HOAFee)
	fmt.Fprintf(w, "  %-24s $%.2f\n", "Tax Assessed Value", p.TaxAssessedValue)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
