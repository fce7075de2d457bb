package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleCount is how many users hold a given role
type RoleCount struct {
	Role  string `json:"role" bson:"role"`
	Count int    `json:"count" bson:"count"`
}

// RevenueStats is the paid-order rollup for one time window
type RevenueStats struct {
	Orders      int        `json:"orders" bson:"orders"`
	Revenue     float64    `json:"revenue" bson:"revenue"`
	AvgOrder    float64    `json:"avgOrder" bson:"avgOrder"`
	LastOrderAt *time.Time `json:"lastOrderAt" bson:"lastOrderAt"`
}

// MRRStats is the current-state recurring revenue rollup. It is never
// windowed: MRR is a present-state metric, unlike revenue/commissions.
type MRRStats struct {
	ActiveSubs int     `json:"activeSubs" bson:"activeSubs"`
	MRR        float64 `json:"mrr" bson:"mrr"`
}

// RepRevenue is one salesperson's revenue line, joined to display fields
type RepRevenue struct {
	SalespersonID primitive.ObjectID `json:"salespersonId" bson:"salespersonId"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Revenue       float64            `json:"revenue" bson:"revenue"`
	Orders        int                `json:"orders" bson:"orders"`
	LastOrderAt   *time.Time         `json:"lastOrderAt,omitempty" bson:"lastOrderAt,omitempty"`
}

// RepCustomers is one salesperson's customer count
type RepCustomers struct {
	SalespersonID primitive.ObjectID `json:"salespersonId" bson:"salespersonId"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Customers     int                `json:"customers" bson:"customers"`
}

// RepCommission is one salesperson's commission total in the window
type RepCommission struct {
	SalespersonID primitive.ObjectID `json:"salespersonId" bson:"salespersonId"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Total         float64            `json:"total" bson:"total"`
}

// AdminReport is the organization-wide dashboard
type AdminReport struct {
	UsersByRole    []RoleCount    `json:"usersByRole"`
	Plans          []Plan         `json:"plans"`
	Addons         []AddOn        `json:"addons"`
	RevenueLast90d RevenueStats   `json:"revenueLast90d"`
	MRR            MRRStats       `json:"mrr"`
	TopSalespeople []RepRevenue   `json:"topSalespeople"`
	CustomersByRep []RepCustomers `json:"customersByRep"`
	WindowStart    time.Time      `json:"windowStart"`
}

// ManagerReport is the dashboard scoped to one manager's direct reports
type ManagerReport struct {
	ManagerID          primitive.ObjectID `json:"managerId"`
	Reps               []UserSummary      `json:"reps"`
	Customers          []CustomerSummary  `json:"customers"`
	SalesLast90d       []RepRevenue       `json:"salesLast90d"`
	MRR                MRRStats           `json:"mrr"`
	CommissionsLast90d []RepCommission    `json:"commissionsLast90d"`
	WindowStart        time.Time          `json:"windowStart"`
}

// SalespersonReport is the dashboard scoped to a single salesperson
type SalespersonReport struct {
	Me                 *UserSummary      `json:"me"`
	Manager            *UserSummary      `json:"manager"`
	Customers          []CustomerSummary `json:"customers"`
	SalesLast90d       RevenueStats      `json:"salesLast90d"`
	CommissionsLast90d float64           `json:"commissionsLast90d"`
	MRR                MRRStats          `json:"mrr"`
	WindowStart        time.Time         `json:"windowStart"`
}
