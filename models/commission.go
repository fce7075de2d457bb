package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commission statuses
const (
	CommissionPending  = "PENDING"
	CommissionApproved = "APPROVED"
	CommissionPaid     = "PAID"
)

// Commission is the payout owed to a salesperson for one paid order.
// Exactly one commission exists per order (unique index on orderId).
// SalespersonAmount = round2(BaseAmount * SalespersonRate).
type Commission struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrderID           primitive.ObjectID `json:"orderId" bson:"orderId"`
	SalespersonID     primitive.ObjectID `json:"salespersonId" bson:"salespersonId"`
	BaseAmount        float64            `json:"baseAmount" bson:"baseAmount"`
	SalespersonRate   float64            `json:"salespersonRate" bson:"salespersonRate"`
	SalespersonAmount float64            `json:"salespersonAmount" bson:"salespersonAmount"`
	Status            string             `json:"status" bson:"status"`
	ApprovedAt        *time.Time         `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	PaidAt            *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	PayoutRef         string             `json:"payoutRef,omitempty" bson:"payoutRef,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}
