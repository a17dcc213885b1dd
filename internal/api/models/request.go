package models

// InputsRequest carries proforma inputs. Omitted fields fall back to the
// listing lookup (price, property tax) or to configured defaults.
type InputsRequest struct {
	PurchasePrice *float64 `json:"purchase_price,omitempty" binding:"omitempty,gt=0"`
	LoanPct       *float64 `json:"loan_pct,omitempty" binding:"omitempty,gte=0,lte=1"`
	InterestRate  *float64 `json:"interest_rate,omitempty" binding:"omitempty,gte=0"`
	TermYears     *int     `json:"term_years,omitempty" binding:"omitempty,gt=0"`
	OccupancyRate *float64 `json:"occupancy_rate,omitempty" binding:"omitempty,gte=0,lte=1"`
	NightlyRate   *float64 `json:"nightly_rate,omitempty" binding:"omitempty,gt=0"`
	ExpenseRatio  *float64 `json:"expense_ratio,omitempty" binding:"omitempty,gte=0,lte=1"`
	PropertyTax   *float64 `json:"property_tax,omitempty" binding:"omitempty,gte=0"`
	Insurance     *float64 `json:"insurance,omitempty" binding:"omitempty,gte=0"`
}

// UnderwriteRequest represents the request body for an underwriting run
type UnderwriteRequest struct {
	InputsRequest

	URL    string `json:"url,omitempty" binding:"omitempty,url"` // Zillow listing URL
	APIKey string `json:"api_key,omitempty"`                     // RapidAPI key, required with url

	ROITarget *float64          `json:"roi_target,omitempty"` // cash-on-cash %, e.g. 12
	Options   UnderwriteOptions `json:"options,omitempty"`
}

// UnderwriteOptions contains optional output controls
type UnderwriteOptions struct {
	IncludeTrials bool `json:"include_trials,omitempty"` // default: false
	Top           int  `json:"top,omitempty" binding:"gte=0,lte=250"`
}

// LegacyUnderwriteRequest is the original single-page form payload.
// Occupancy is in percent.
type LegacyUnderwriteRequest struct {
	URL           string   `json:"url"`
	APIKey        string   `json:"api_key,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty" binding:"omitempty,gt=0"`
	ADR           float64  `json:"adr" binding:"required,gt=0"`
	Occupancy     *float64 `json:"occupancy" binding:"required,gte=0,lte=100"`
	ROITarget     float64  `json:"roi_target"`
}

// CompareRequest runs several variations on top of one base request
type CompareRequest struct {
	UnderwriteRequest
	Variations []VariationRequest `json:"variations" binding:"required,min=1,dive"`
}

// VariationRequest defines a variation to evaluate
type VariationRequest struct {
	InputsRequest
	Name string `json:"name" binding:"required"`
}
