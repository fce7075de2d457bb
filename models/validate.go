package models

import (
	"fmt"

	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

// Write-path validation. These checks used to live as schema hooks in an
// earlier incarnation; they are explicit functions here so the write path
// calls them before persistence and gets a typed error back.

// ValidateOrderLines enforces line invariants: at least one line, a single
// kind across all lines (all PLAN or all ADDON), non-negative unit prices
// and positive quantities.
func ValidateOrderLines(lines []OrderLine) *utils.AppError {
	if len(lines) == 0 {
		return utils.NewValidationError("order must contain at least one line")
	}
	kind := lines[0].Kind
	for i, line := range lines {
		if line.Kind != LinePlan && line.Kind != LineAddon {
			return utils.NewValidationError(fmt.Sprintf("line %d: unknown kind %q", i, line.Kind))
		}
		if line.Kind != kind {
			return utils.NewValidationError("order cannot mix PLAN and ADDON lines")
		}
		if line.UnitPrice < 0 {
			return utils.NewValidationError(fmt.Sprintf("line %d: unitPrice must be >= 0", i))
		}
		if line.Qty < 1 {
			return utils.NewValidationError(fmt.Sprintf("line %d: qty must be >= 1", i))
		}
		if line.RefID.IsZero() {
			return utils.NewValidationError(fmt.Sprintf("line %d: refId is required", i))
		}
	}
	return nil
}

// LinesTotal computes the order total from its line snapshots
func LinesTotal(lines []OrderLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Qty)
	}
	return total
}

// ValidateRate enforces 0 <= rate <= 1
func ValidateRate(rate float64) *utils.AppError {
	if rate < 0 || rate > 1 {
		return utils.NewValidationError("commission rate must be between 0 and 1")
	}
	return nil
}

// ValidatePrice enforces price >= 0
func ValidatePrice(price float64) *utils.AppError {
	if price < 0 {
		return utils.NewValidationError("price must be >= 0")
	}
	return nil
}
