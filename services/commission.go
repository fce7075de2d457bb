// services/commission.go
package services

import (
	"math"
	"time"

	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

// Round2 rounds an amount to 2 decimal places (money rounding)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeCommission derives the PENDING commission record owed for a paid
// order at the given rate. The caller persists the result; persistence is
// guarded by the unique orderId index so re-invocation for the same order
// cannot create a second commission.
func ComputeCommission(order *models.Order, rate float64) (*models.Commission, *utils.AppError) {
	if order.Status != models.OrderPaid {
		return nil, utils.NewValidationError("commission requires a PAID order")
	}
	if order.Total < 0 {
		return nil, utils.NewValidationError("order total must be >= 0")
	}
	if err := models.ValidateRate(rate); err != nil {
		return nil, err
	}

	now := time.Now()
	return &models.Commission{
		OrderID:           order.ID,
		SalespersonID:     order.SalespersonID,
		BaseAmount:        order.Total,
		SalespersonRate:   rate,
		SalespersonAmount: Round2(order.Total * rate),
		Status:            models.CommissionPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}
