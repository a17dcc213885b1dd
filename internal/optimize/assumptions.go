package optimize

import (
	"fmt"

	"str-underwriter/internal/model"
)

// Assumptions describes, in plain sentences, which inputs were moved to
// reach best.
func Assumptions(base model.Inputs, best Optimized) []string {
	price := "If we use the listed purchase price"
	if best.PurchasePrice < base.PurchasePrice {
		price = fmt.Sprintf("If we achieve a %.0f%% discount on the purchase price", priceDiscount*100)
	}
	return []string{
		price,
		fmt.Sprintf("If we set ADR to $%.2f", best.ADR),
		fmt.Sprintf("If occupancy rate is %.1f%%", best.OccupancyPct),
		fmt.Sprintf("If expense ratio is %.1f%%", best.ExpenseRatioPct),
	}
}
