package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses
const (
	OrderCreated  = "CREATED"
	OrderPaid     = "PAID"
	OrderFailed   = "FAILED"
	OrderRefunded = "REFUNDED"
)

// Order line kinds
const (
	LinePlan  = "PLAN"
	LineAddon = "ADDON"
)

// OrderLine is one priced line of an order. UnitPrice is an accounting
// snapshot of the referenced plan/add-on price at order time; it is written
// once and never re-derived from the catalog.
type OrderLine struct {
	Kind        string             `json:"kind" bson:"kind"`
	RefID       primitive.ObjectID `json:"refId" bson:"refId"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	UnitPrice   float64            `json:"unitPrice" bson:"unitPrice"`
	Qty         int                `json:"qty" bson:"qty"`
}

// Order is a billable transaction. Lines must be homogeneous: all PLAN or
// all ADDON, never mixed.
type Order struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	CustomerID     primitive.ObjectID  `json:"customerId" bson:"customerId"`
	SalespersonID  primitive.ObjectID  `json:"salespersonId" bson:"salespersonId"`
	SubscriptionID *primitive.ObjectID `json:"subscriptionId,omitempty" bson:"subscriptionId,omitempty"`
	Lines          []OrderLine         `json:"lines" bson:"lines"`
	Total          float64             `json:"total" bson:"total"`
	Status         string              `json:"status" bson:"status"`
	PaidAt         *time.Time          `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	Notes          string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}
