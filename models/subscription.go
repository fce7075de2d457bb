package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription statuses
const (
	SubActive   = "ACTIVE"
	SubTrialing = "TRIALING"
	SubPastDue  = "PAST_DUE"
	SubCanceled = "CANCELED"
)

// Subscription is an active recurring commitment. NextBillingDate is
// derived from the plan billing cycle at creation/renewal time.
type Subscription struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CustomerID      primitive.ObjectID `json:"customerId" bson:"customerId"`
	SalespersonID   primitive.ObjectID `json:"salespersonId" bson:"salespersonId"`
	PlanID          primitive.ObjectID `json:"planId" bson:"planId"`
	Status          string             `json:"status" bson:"status"`
	StartDate       time.Time          `json:"startDate" bson:"startDate"`
	NextBillingDate *time.Time         `json:"nextBillingDate,omitempty" bson:"nextBillingDate,omitempty"`
	CancelAt        *time.Time         `json:"cancelAt,omitempty" bson:"cancelAt,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ValidSubscriptionStatus reports whether status is a known subscription status
func ValidSubscriptionStatus(status string) bool {
	switch status {
	case SubActive, SubTrialing, SubPastDue, SubCanceled:
		return true
	}
	return false
}
