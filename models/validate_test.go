package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func planLine(price float64, qty int) OrderLine {
	return OrderLine{Kind: LinePlan, RefID: primitive.NewObjectID(), UnitPrice: price, Qty: qty}
}

func addonLine(price float64, qty int) OrderLine {
	return OrderLine{Kind: LineAddon, RefID: primitive.NewObjectID(), UnitPrice: price, Qty: qty}
}

func TestValidateOrderLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []OrderLine
		wantErr bool
	}{
		{"single plan line", []OrderLine{planLine(49, 1)}, false},
		{"multiple plan lines", []OrderLine{planLine(49, 1), planLine(499, 2)}, false},
		{"multiple addon lines", []OrderLine{addonLine(20, 1), addonLine(199, 1)}, false},
		{"free line is allowed", []OrderLine{addonLine(0, 1)}, false},
		{"empty order", nil, true},
		{"mixed plan and addon", []OrderLine{planLine(49, 1), addonLine(20, 1)}, true},
		{"mixed addon then plan", []OrderLine{addonLine(20, 1), planLine(49, 1)}, true},
		{"negative unit price", []OrderLine{planLine(-1, 1)}, true},
		{"zero qty", []OrderLine{planLine(49, 0)}, true},
		{"negative qty", []OrderLine{planLine(49, -2)}, true},
		{"unknown kind", []OrderLine{{Kind: "BUNDLE", RefID: primitive.NewObjectID(), UnitPrice: 1, Qty: 1}}, true},
		{"missing refId", []OrderLine{{Kind: LinePlan, UnitPrice: 49, Qty: 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrderLines(tt.lines)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOrderLines() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLinesTotal(t *testing.T) {
	lines := []OrderLine{planLine(49, 2), planLine(10, 3)}
	if got := LinesTotal(lines); got != 128 {
		t.Errorf("LinesTotal() = %v, want 128", got)
	}
	if got := LinesTotal(nil); got != 0 {
		t.Errorf("LinesTotal(nil) = %v, want 0", got)
	}
}

func TestValidateRate(t *testing.T) {
	for _, rate := range []float64{0, 0.1, 0.5, 1} {
		if err := ValidateRate(rate); err != nil {
			t.Errorf("ValidateRate(%v) = %v, want nil", rate, err)
		}
	}
	for _, rate := range []float64{-0.01, 1.01, 2} {
		if err := ValidateRate(rate); err == nil {
			t.Errorf("ValidateRate(%v) = nil, want error", rate)
		}
	}
}

func TestValidatePrice(t *testing.T) {
	if err := ValidatePrice(0); err != nil {
		t.Errorf("ValidatePrice(0) = %v, want nil", err)
	}
	if err := ValidatePrice(-5); err == nil {
		t.Error("ValidatePrice(-5) = nil, want error")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleManager, RoleSalesperson} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "admin", "SUPERUSER"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}

func TestValidBillingCycle(t *testing.T) {
	if !ValidBillingCycle(CycleMonthly) || !ValidBillingCycle(CycleYearly) {
		t.Error("known cycles should validate")
	}
	for _, cycle := range []string{"", "monthly", "WEEKLY"} {
		if ValidBillingCycle(cycle) {
			t.Errorf("ValidBillingCycle(%q) = true, want false", cycle)
		}
	}
}
