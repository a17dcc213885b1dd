package model

// DefaultTaxRate is applied to the assessed value to estimate annual property tax.
const DefaultTaxRate = 0.015

// DefaultAssessedValue stands in when a listing carries no tax assessment.
const DefaultAssessedValue = 6000

// Property is the subset of a listing lookup the underwriter consumes.
// Only Price and TaxAssessedValue feed the proforma; the rest is displayed.
type Property struct {
	ZPID             string  `json:"zpid"`
	Address          string  `json:"address"`
	Price            float64 `json:"price"`
	Bedrooms         float64 `json:"bedrooms"`
	Bathrooms        float64 `json:"bathrooms"`
	LivingArea       float64 `json:"living_area"`
	PropertyTaxRate  float64 `json:"property_tax_rate"`
	HOAFee           float64 `json:"hoa_fee"`
	TaxAssessedValue float64 `json:"tax_assessed_value"`
}

// AnnualPropertyTax estimates yearly tax as assessed value times rate.
// fallbackAssessed is used when the listing has no assessment.
func (p Property) AnnualPropertyTax(rate, fallbackAssessed float64) float64 {
	assessed := p.TaxAssessedValue
	if assessed <= 0 {
		assessed = fallbackAssessed
	}
	return assessed * rate
}
