package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Billing cycles
const (
	CycleMonthly = "MONTHLY"
	CycleYearly  = "YEARLY"
)

// Plan is a recurring offering
type Plan struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	BillingCycle string             `json:"billingCycle" bson:"billingCycle"`
	Price        float64            `json:"price" bson:"price"`
	Features     []string           `json:"features" bson:"features"`
	Active       bool               `json:"active" bson:"active"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ValidBillingCycle reports whether cycle is a known billing cycle
func ValidBillingCycle(cycle string) bool {
	return cycle == CycleMonthly || cycle == CycleYearly
}
