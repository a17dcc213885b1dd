package optimize

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteTrialsCSV writes one row per trial to path.
func WriteTrialsCSV(path string, trials []Trial) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return EncodeTrialsCSV(f, trials)
}

func EncodeTrialsCSV(out io.Writer, trials []Trial) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"price_option",
		"purchase_price",
		"nightly_rate",
		"occupancy_rate",
		"expense_ratio",
		"gross_annual_income",
		"monthly_debt_service",
		"net_operating_income",
		"cap_rate_pct",
		"monthly_cash_flow",
		"cash_on_cash_return_pct",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range trials {
		row := []string{
			strconv.Itoa(t.Index),
			string(t.Price),
			fmtFloat(t.Inputs.PurchasePrice),
			fmtFloat(t.Inputs.NightlyRate),
			fmtFloat(t.Inputs.OccupancyRate),
			fmtFloat(t.Inputs.ExpenseRatio),
			fmtFloat(t.Results.GrossAnnualIncome),
			fmtFloat(t.Results.MonthlyDebtService),
			fmtFloat(t.Results.NetOperatingIncome),
			fmtFloat(t.Results.CapRatePct),
			fmtFloat(t.Results.MonthlyCashFlow),
			fmtFloat(t.Results.CashOnCashReturnPct),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
