package handlers

import (
	"net/http"

	"str-underwriter/internal/api/models"
	"str-underwriter/internal/config"

	"github.com/gin-gonic/gin"
)

// ParameterHandler describes the accepted inputs and their defaults
type ParameterHandler struct {
	cfg *config.Config
}

func NewParameterHandler(cfg *config.Config) *ParameterHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &ParameterHandler{cfg: cfg}
}

// ListParameters handles GET /api/v1/parameters
func (h *ParameterHandler) ListParameters(c *gin.Context) {
	d := h.cfg.ManualInputs()
	parameters := []models.ParameterInfo{
		{
			Name:        "purchase_price",
			Type:        "float",
			Description: "Purchase price in $. Taken from the listing when url is given.",
		},
		{
			Name:        "loan_pct",
			Type:        "float",
			Description: "Financed share of the price, 0..1",
			Default:     d.LoanPct,
		},
		{
			Name:        "interest_rate",
			Type:        "float",
			Description: "Annual interest rate as a fraction (0.07 = 7%)",
			Default:     d.InterestRate,
		},
		{
			Name:        "term_years",
			Type:        "int",
			Description: "Loan term in years",
			Default:     d.TermYears,
		},
		{
			Name:        "occupancy_rate",
			Type:        "float",
			Description: "Share of nights booked, 0..1",
			Default:     d.OccupancyRate,
		},
		{
			Name:        "nightly_rate",
			Type:        "float",
			Description: "Average daily rate (ADR) in $",
			Default:     d.NightlyRate,
		},
		{
			Name:        "expense_ratio",
			Type:        "float",
			Description: "Operating expenses as a share of gross income, 0..1",
			Default:     d.ExpenseRatio,
		},
		{
			Name:        "property_tax",
			Type:        "float",
			Description: "Annual property tax in $. Estimated from the assessed value when url is given.",
			Default:     d.PropertyTax,
		},
		{
			Name:        "insurance",
			Type:        "float",
			Description: "Annual insurance in $",
			Default:     d.Insurance,
		},
		{
			Name:        "url",
			Type:        "string",
			Description: "Zillow listing URL (…/<zpid>_zpid/); requires api_key",
		},
		{
			Name:        "roi_target",
			Type:        "float",
			Description: "Cash-on-cash target in percent",
		},
	}

	c.JSON(http.StatusOK, gin.H{"parameters": parameters})
}
