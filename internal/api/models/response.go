package models

import "str-underwriter/internal/model"

// UnderwriteResponse represents the response from an underwriting run
type UnderwriteResponse struct {
	Property          *model.Property           `json:"property,omitempty"`
	OriginalInputs    InputsResponse            `json:"original_inputs"`
	OriginalProforma  ProformaResponse          `json:"original_proforma"`
	OptimizedProforma OptimizedProformaResponse `json:"optimized_proforma"`
	Assumptions       []string                  `json:"assumptions"`
	Target            *TargetResponse           `json:"target,omitempty"`
	Spread            SpreadResponse            `json:"spread"`
	TrialsEvaluated   int                       `json:"trials_evaluated"`
	TopTrials         []TrialResponse           `json:"top_trials,omitempty"`
	Trials            []TrialResponse           `json:"trials,omitempty"`
}

// InputsResponse echoes the resolved inputs
type InputsResponse struct {
	PurchasePrice float64 `json:"purchase_price"`
	LoanPct       float64 `json:"loan_pct"`
	InterestRate  float64 `json:"interest_rate"`
	TermYears     int     `json:"term_years"`
	OccupancyRate float64 `json:"occupancy_rate"`
	NightlyRate   float64 `json:"nightly_rate"`
	ExpenseRatio  float64 `json:"expense_ratio"`
	PropertyTax   float64 `json:"property_tax"`
	Insurance     float64 `json:"insurance"`
}

// ProformaResponse contains the derived metrics
type ProformaResponse struct {
	GrossAnnualIncome   float64 `json:"gross_annual_income"`
	MonthlyDebtService  float64 `json:"monthly_debt_service"`
	NetOperatingIncome  float64 `json:"net_operating_income"`
	CapRatePct          float64 `json:"cap_rate_pct"`
	MonthlyCashFlow     float64 `json:"monthly_cash_flow"`
	CashOnCashReturnPct float64 `json:"cash_on_cash_return_pct"`
}

// OptimizedProformaResponse adds the assumptions that produced it
type OptimizedProformaResponse struct {
	ProformaResponse
	ADR              float64 `json:"adr"`
	OccupancyRatePct float64 `json:"occupancy_rate_pct"`
	ExpenseRatioPct  float64 `json:"expense_ratio_pct"`
	PurchasePrice    float64 `json:"purchase_price"`
}

// TargetResponse evaluates a cash-on-cash goal
type TargetResponse struct {
	CashOnCashPct  float64 `json:"cash_on_cash_pct"`
	OriginalMeets  bool    `json:"original_meets"`
	OptimizedMeets bool    `json:"optimized_meets"`
	GapPct         float64 `json:"gap_pct"`
}

// SpreadResponse summarizes cash flow across the grid
type SpreadResponse struct {
	Count         int     `json:"count"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Mean          float64 `json:"mean"`
	P05           float64 `json:"p05"`
	P95           float64 `json:"p95"`
	SpreadP95P05  float64 `json:"spread_p95_p05"`
	PositiveShare float64 `json:"positive_share"`
}

// TrialResponse represents one evaluated grid point
type TrialResponse struct {
	Rank        int              `json:"rank,omitempty"`
	Index       int              `json:"index"`
	PriceOption string           `json:"price_option"`
	Inputs      InputsResponse   `json:"inputs"`
	Proforma    ProformaResponse `json:"proforma"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name              string                    `json:"name"`
	Inputs            InputsResponse            `json:"inputs"`
	OriginalProforma  ProformaResponse          `json:"original_proforma"`
	OptimizedProforma OptimizedProformaResponse `json:"optimized_proforma"`
	Assumptions       []string                  `json:"assumptions"`
}

// PresetInfo represents a financing preset file
type PresetInfo struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	File      string         `json:"file"`
	Financing FinancingSpecs `json:"financing"`
}

// FinancingSpecs contains the loan terms of a preset
type FinancingSpecs struct {
	LoanPct      float64 `json:"loan_pct"`
	InterestRate float64 `json:"interest_rate"`
	TermYears    int     `json:"term_years"`
}

// ParameterInfo describes an input parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
