package services

import (
	"testing"
	"time"

	"github.com/MuhammadZain243/commission-subscription-backend/models"
)

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name  string
		cycle string
		price float64
		want  float64
	}{
		{"monthly passes through", models.CycleMonthly, 49, 49},
		{"yearly divides by 12", models.CycleYearly, 499, 499.0 / 12},
		{"yearly zero", models.CycleYearly, 0, 0},
		{"unknown cycle falls back to price", "WEEKLY", 10, 10},
		{"empty cycle falls back to price", "", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &models.Plan{BillingCycle: tt.cycle, Price: tt.price}
			if got := MonthlyEquivalent(plan); got != tt.want {
				t.Errorf("MonthlyEquivalent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextBillingDate(t *testing.T) {
	start := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	monthly := &models.Plan{BillingCycle: models.CycleMonthly}
	if got := NextBillingDate(monthly, start); !got.Equal(start.AddDate(0, 1, 0)) {
		t.Errorf("monthly next billing = %v, want %v", got, start.AddDate(0, 1, 0))
	}

	yearly := &models.Plan{BillingCycle: models.CycleYearly}
	if got := NextBillingDate(yearly, start); !got.Equal(start.AddDate(1, 0, 0)) {
		t.Errorf("yearly next billing = %v, want %v", got, start.AddDate(1, 0, 0))
	}

	// Unknown cycles bill monthly, same as the normalization fallback
	unknown := &models.Plan{BillingCycle: "WEEKLY"}
	if got := NextBillingDate(unknown, start); !got.Equal(start.AddDate(0, 1, 0)) {
		t.Errorf("unknown cycle next billing = %v, want %v", got, start.AddDate(0, 1, 0))
	}
}
