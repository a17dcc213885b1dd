package handlers

import (
	"errors"
	"log"
	"net/http"

	"str-underwriter/internal/analysis"
	"str-underwriter/internal/api/models"
	"str-underwriter/internal/data"
	"str-underwriter/internal/model"
	"str-underwriter/internal/optimize"
	"str-underwriter/internal/underwrite"

	"github.com/gin-gonic/gin"
)

// UnderwriteHandler handles underwriting requests
type UnderwriteHandler struct {
	svc *underwrite.Service
}

// NewUnderwriteHandler creates a new underwrite handler
func NewUnderwriteHandler(svc *underwrite.Service) *UnderwriteHandler {
	return &UnderwriteHandler{svc: svc}
}

// Underwrite handles POST /api/v1/underwrite
func (h *UnderwriteHandler) Underwrite(c *gin.Context) {
	var req models.UnderwriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	rep, err := h.svc.Run(c.Request.Context(), underwrite.Request{
		ListingURL: req.URL,
		APIKey:     req.APIKey,
		Overrides:  toOverrides(req.InputsRequest),
		ROITarget:  req.ROITarget,
		Top:        req.Options.Top,
		KeepTrials: req.Options.IncludeTrials,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildResponse(rep))
}

// UnderwriteLegacy handles POST /api/underwrite, the original form payload:
// url, adr, occupancy (percent) and roi_target.
func (h *UnderwriteHandler) UnderwriteLegacy(c *gin.Context) {
	var req models.LegacyUnderwriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	adr := req.ADR
	occupancy := *req.Occupancy / 100
	var target *float64
	if req.ROITarget > 0 {
		target = &req.ROITarget
	}

	rep, err := h.svc.Run(c.Request.Context(), underwrite.Request{
		ListingURL: req.URL,
		APIKey:     req.APIKey,
		Overrides: underwrite.Overrides{
			PurchasePrice: req.PurchasePrice,
			NightlyRate:   &adr,
			OccupancyRate: &occupancy,
		},
		ROITarget: target,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildResponse(rep))
}

// Compare handles POST /api/v1/underwrite/compare
func (h *UnderwriteHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	variations := make([]underwrite.Variation, 0, len(req.Variations))
	for _, v := range req.Variations {
		variations = append(variations, underwrite.Variation{
			Name:      v.Name,
			Overrides: toOverrides(v.InputsRequest),
		})
	}

	results, err := h.svc.Compare(c.Request.Context(), underwrite.Request{
		ListingURL: req.URL,
		APIKey:     req.APIKey,
		Overrides:  toOverrides(req.InputsRequest),
		ROITarget:  req.ROITarget,
	}, variations)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	comparison := make([]models.ComparisonResult, 0, len(results))
	for _, r := range results {
		comparison = append(comparison, models.ComparisonResult{
			Name:              r.Name,
			Inputs:            convertInputs(r.Report.Inputs),
			OriginalProforma:  convertResults(r.Report.Original),
			OptimizedProforma: convertOptimized(r.Report.Optimized),
			Assumptions:       r.Report.Assumptions,
		})
	}
	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// Helper methods

func toOverrides(in models.InputsRequest) underwrite.Overrides {
	return underwrite.Overrides{
		PurchasePrice: in.PurchasePrice,
		LoanPct:       in.LoanPct,
		InterestRate:  in.InterestRate,
		TermYears:     in.TermYears,
		OccupancyRate: in.OccupancyRate,
		NightlyRate:   in.NightlyRate,
		ExpenseRatio:  in.ExpenseRatio,
		PropertyTax:   in.PropertyTax,
		Insurance:     in.Insurance,
	}
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// writeServiceError maps pipeline stage errors onto HTTP responses.
func writeServiceError(c *gin.Context, err error) {
	var lookupErr *data.LookupError
	switch {
	case errors.Is(err, data.ErrNoZPID):
		badRequest(c, "INVALID_URL", err.Error())
	case errors.Is(err, model.ErrInvalidInput):
		badRequest(c, "INVALID_INPUT", err.Error())
	case errors.As(err, &lookupErr):
		statusCode := http.StatusBadGateway
		switch lookupErr.StatusCode {
		case 0:
			statusCode = http.StatusBadRequest
		case http.StatusForbidden, http.StatusUnauthorized:
			statusCode = http.StatusUnauthorized
		case http.StatusTooManyRequests:
			statusCode = http.StatusTooManyRequests
		case http.StatusNotFound:
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    lookupErr.Code,
				Message: lookupErr.Message,
				Details: map[string]interface{}{
					"status_code": lookupErr.StatusCode,
					"retry_after": lookupErr.RetryAfter,
				},
			},
		})
	default:
		log.Printf("[Underwrite] Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNDERWRITE_ERROR",
				Message: err.Error(),
			},
		})
	}
}

func buildResponse(rep *underwrite.Report) models.UnderwriteResponse {
	resp := models.UnderwriteResponse{
		Property:          rep.Property,
		OriginalInputs:    convertInputs(rep.Inputs),
		OriginalProforma:  convertResults(rep.Original),
		OptimizedProforma: convertOptimized(rep.Optimized),
		Assumptions:       rep.Assumptions,
		Spread:            convertSpread(rep.Spread),
		TrialsEvaluated:   rep.Evaluated,
	}
	if rep.Target != nil {
		resp.Target = &models.TargetResponse{
			CashOnCashPct:  rep.Target.CashOnCashPct,
			OriginalMeets:  rep.Target.OriginalMeets,
			OptimizedMeets: rep.Target.OptimizedMeets,
			GapPct:         rep.Target.GapPct,
		}
	}
	for _, r := range rep.TopTrials {
		t := convertTrial(r.Trial)
		t.Rank = r.Rank
		resp.TopTrials = append(resp.TopTrials, t)
	}
	for _, t := range rep.Trials {
		resp.Trials = append(resp.Trials, convertTrial(t))
	}
	return resp
}

func convertInputs(in model.Inputs) models.InputsResponse {
	return models.InputsResponse{
		PurchasePrice: in.PurchasePrice,
		LoanPct:       in.LoanPct,
		InterestRate:  in.InterestRate,
		TermYears:     in.TermYears,
		OccupancyRate: in.OccupancyRate,
		NightlyRate:   in.NightlyRate,
		ExpenseRatio:  in.ExpenseRatio,
		PropertyTax:   in.PropertyTax,
		Insurance:     in.Insurance,
	}
}

func convertResults(r model.Results) models.ProformaResponse {
	return models.ProformaResponse{
		GrossAnnualIncome:   r.GrossAnnualIncome,
		MonthlyDebtService:  r.MonthlyDebtService,
		NetOperatingIncome:  r.NetOperatingIncome,
		CapRatePct:          r.CapRatePct,
		MonthlyCashFlow:     r.MonthlyCashFlow,
		CashOnCashReturnPct: r.CashOnCashReturnPct,
	}
}

func convertOptimized(o optimize.Optimized) models.OptimizedProformaResponse {
	return models.OptimizedProformaResponse{
		ProformaResponse: convertResults(o.Results),
		ADR:              o.ADR,
		OccupancyRatePct: o.OccupancyPct,
		ExpenseRatioPct:  o.ExpenseRatioPct,
		PurchasePrice:    o.PurchasePrice,
	}
}

func convertSpread(s analysis.CashFlowSpread) models.SpreadResponse {
	return models.SpreadResponse{
		Count:         s.Count,
		Min:           s.Min,
		Max:           s.Max,
		Mean:          s.Mean,
		P05:           s.P05,
		P95:           s.P95,
		SpreadP95P05:  s.SpreadP95P05,
		PositiveShare: s.PositiveShare,
	}
}

func convertTrial(t optimize.Trial) models.TrialResponse {
	return models.TrialResponse{
		Index:       t.Index,
		PriceOption: string(t.Price),
		Inputs:      convertInputs(t.Inputs),
		Proforma:    convertResults(t.Results),
	}
}
