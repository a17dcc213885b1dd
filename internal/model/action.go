package model

// PriceOption labels which purchase-price candidate a trial used.
// Keep these values stable; they are intended for CSV output.
type PriceOption string

const (
	PriceListed     PriceOption = "LISTED"
	PriceDiscounted PriceOption = "DISCOUNTED"
)

func PriceOptionFor(trialPrice, basePrice float64) PriceOption {
	if trialPrice < basePrice {
		return PriceDiscounted
	}
	return PriceListed
}
