// services/mrr.go
package services

import (
	"time"

	"github.com/MuhammadZain243/commission-subscription-backend/models"
)

// MonthlyEquivalent normalizes a plan's price to its monthly recurring
// contribution. Unknown cycles fall back to the price unchanged. No
// rounding here; rounding, if any, happens at display time.
func MonthlyEquivalent(plan *models.Plan) float64 {
	switch plan.BillingCycle {
	case models.CycleMonthly:
		return plan.Price
	case models.CycleYearly:
		return plan.Price / 12
	default:
		return plan.Price
	}
}

// NextBillingDate computes the first renewal date after start for the
// plan's billing cycle.
func NextBillingDate(plan *models.Plan, start time.Time) time.Time {
	if plan.BillingCycle == models.CycleYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}
