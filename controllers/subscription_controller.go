// controllers/subscription_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/services"
	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

type SubscriptionController struct {
	db *mongo.Database
}

func NewSubscriptionController(db *mongo.Database) *SubscriptionController {
	return &SubscriptionController{db: db}
}

type createSubscriptionRequest struct {
	CustomerID string `json:"customerId" validate:"required"`
	PlanID     string `json:"planId" validate:"required"`
	Status     string `json:"status,omitempty"`
}

// CreateSubscription starts a recurring commitment for a customer. The
// subscription is owned by the customer's salesperson, and the next
// billing date is derived from the plan's billing cycle.
func (sc *SubscriptionController) CreateSubscription(c echo.Context) error {
	var req createSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, utils.NewValidationError("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, &utils.AppError{Kind: utils.ErrValidation, Message: "validation failed", Details: err.Error()})
	}

	customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		return fail(c, utils.NewValidationError("invalid customerId"))
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		return fail(c, utils.NewValidationError("invalid planId"))
	}

	status := req.Status
	if status == "" {
		status = models.SubActive
	}
	if !models.ValidSubscriptionStatus(status) {
		return fail(c, utils.NewValidationError("unknown subscription status"))
	}

	ctx := c.Request().Context()

	var customer models.Customer
	if err := sc.db.Collection("customers").FindOne(ctx, bson.M{"_id": customerID}).Decode(&customer); err != nil {
		return fail(c, utils.FromMongoError(err, "customer not found", ""))
	}

	var plan models.Plan
	if err := sc.db.Collection("plans").FindOne(ctx, bson.M{"_id": planID}).Decode(&plan); err != nil {
		return fail(c, utils.FromMongoError(err, "plan not found", ""))
	}
	if !plan.Active {
		return fail(c, utils.NewValidationError("plan is not active"))
	}

	now := time.Now()
	nextBilling := services.NextBillingDate(&plan, now)
	subscription := models.Subscription{
		CustomerID:      customerID,
		SalespersonID:   customer.SalespersonID,
		PlanID:          planID,
		Status:          status,
		StartDate:       now,
		NextBillingDate: &nextBilling,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	result, err := sc.db.Collection("subscriptions").InsertOne(ctx, subscription)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to create subscription", err))
	}
	subscription.ID = result.InsertedID.(primitive.ObjectID)

	return success(c, http.StatusCreated, "Subscription created successfully", subscription)
}

// GetSubscriptions lists subscriptions visible to the caller. Each row
// includes the plan's monthly-equivalent contribution for display.
func (sc *SubscriptionController) GetSubscriptions(c echo.Context) error {
	filter, appErr := salespersonScope(c, sc.db)
	if appErr != nil {
		return fail(c, appErr)
	}
	if status := c.QueryParam("status"); status != "" {
		if !models.ValidSubscriptionStatus(status) {
			return fail(c, utils.NewValidationError("unknown subscription status"))
		}
		filter["status"] = status
	}

	ctx := c.Request().Context()
	cursor, err := sc.db.Collection("subscriptions").Find(ctx, filter)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to fetch subscriptions", err))
	}
	defer cursor.Close(ctx)

	subscriptions := []models.Subscription{}
	if err := cursor.All(ctx, &subscriptions); err != nil {
		return fail(c, utils.NewInternalError("failed to decode subscriptions", err))
	}

	type subscriptionRow struct {
		models.Subscription
		MonthlyEquivalent *float64 `json:"monthlyEquivalent,omitempty"`
	}

	rows := make([]subscriptionRow, 0, len(subscriptions))
	for _, sub := range subscriptions {
		row := subscriptionRow{Subscription: sub}
		var plan models.Plan
		if err := sc.db.Collection("plans").FindOne(ctx, bson.M{"_id": sub.PlanID}).Decode(&plan); err == nil {
			mrr := services.MonthlyEquivalent(&plan)
			row.MonthlyEquivalent = &mrr
		}
		rows = append(rows, row)
	}

	return success(c, http.StatusOK, "Subscriptions retrieved successfully", rows)
}

// GetSubscription returns one subscription within the caller's scope
func (sc *SubscriptionController) GetSubscription(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}
	filter, appErr := salespersonScope(c, sc.db)
	if appErr != nil {
		return fail(c, appErr)
	}
	filter["_id"] = id

	var subscription models.Subscription
	err := sc.db.Collection("subscriptions").FindOne(c.Request().Context(), filter).Decode(&subscription)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "subscription not found", ""))
	}

	return success(c, http.StatusOK, "Subscription retrieved successfully", subscription)
}

// CancelSubscription marks a subscription CANCELED. It drops out of the
// MRR rollup immediately.
func (sc *SubscriptionController) CancelSubscription(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}
	filter, appErr := salespersonScope(c, sc.db)
	if appErr != nil {
		return fail(c, appErr)
	}
	filter["_id"] = id

	now := time.Now()
	result, err := sc.db.Collection("subscriptions").UpdateOne(
		c.Request().Context(),
		filter,
		bson.M{"$set": bson.M{
			"status":    models.SubCanceled,
			"cancelAt":  now,
			"updatedAt": now,
		}},
	)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to cancel subscription", err))
	}
	if result.MatchedCount == 0 {
		return fail(c, utils.NewNotFoundError("subscription not found"))
	}

	return success(c, http.StatusOK, "Subscription canceled successfully", nil)
}
