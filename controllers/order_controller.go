// controllers/order_controller.go
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

type OrderController struct {
	db             *mongo.Database
	commissionRate float64
}

func NewOrderController(db *mongo.Database, commissionRate float64) *OrderController {
	return &OrderController{db: db, commissionRate: commissionRate}
}

type orderLineRequest struct {
	Kind  string `json:"kind" validate:"required"`
	RefID string `json:"refId" validate:"required"`
	Qty   int    `json:"qty"`
}

type createOrderRequest struct {
	CustomerID     string             `json:"customerId" validate:"required"`
	SubscriptionID string             `json:"subscriptionId,omitempty"`
	Lines          []orderLineRequest `json:"lines" validate:"required,min=1"`
	Notes          string             `json:"notes,omitempty"`
}

// CreateOrder records a billable transaction. Unit prices are snapshotted
// from the catalog at this moment and never re-derived afterwards; lines
// must all reference plans or all reference add-ons.
func (oc *OrderController) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, utils.NewValidationError("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, &utils.AppError{Kind: utils.ErrValidation, Message: "validation failed", Details: err.Error()})
	}

	// Reject mixed-kind orders before touching the catalog
	kind := req.Lines[0].Kind
	for _, line := range req.Lines {
		if line.Kind != models.LinePlan && line.Kind != models.LineAddon {
			return fail(c, utils.NewValidationError("line kind must be PLAN or ADDON"))
		}
		if line.Kind != kind {
			return fail(c, utils.NewValidationError("order cannot mix PLAN and ADDON lines"))
		}
	}

	customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		return fail(c, utils.NewValidationError("invalid customerId"))
	}

	var subscriptionID *primitive.ObjectID
	if req.SubscriptionID != "" {
		id, err := primitive.ObjectIDFromHex(req.SubscriptionID)
		if err != nil {
			return fail(c, utils.NewValidationError("invalid subscriptionId"))
		}
		subscriptionID = &id
	}

	ctx := c.Request().Context()

	var customer models.Customer
	if err := oc.db.Collection("customers").FindOne(ctx, bson.M{"_id": customerID}).Decode(&customer); err != nil {
		return fail(c, utils.FromMongoError(err, "customer not found", ""))
	}

	lines := make([]models.OrderLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		refID, err := primitive.ObjectIDFromHex(lr.RefID)
		if err != nil {
			return fail(c, utils.NewValidationError("invalid line refId"))
		}
		qty := lr.Qty
		if qty == 0 {
			qty = 1
		}

		line := models.OrderLine{Kind: lr.Kind, RefID: refID, Qty: qty}
		if lr.Kind == models.LinePlan {
			var plan models.Plan
			if err := oc.db.Collection("plans").FindOne(ctx, bson.M{"_id": refID}).Decode(&plan); err != nil {
				return fail(c, utils.FromMongoError(err, "plan not found", ""))
			}
			line.UnitPrice = plan.Price
			line.Description = plan.Name
		} else {
			var addon models.AddOn
			if err := oc.db.Collection("addons").FindOne(ctx, bson.M{"_id": refID}).Decode(&addon); err != nil {
				return fail(c, utils.FromMongoError(err, "add-on not found", ""))
			}
			line.UnitPrice = addon.Price
			line.Description = addon.Name
		}
		lines = append(lines, line)
	}

	if appErr := models.ValidateOrderLines(lines); appErr != nil {
		return fail(c, appErr)
	}

	now := time.Now()
	order := models.Order{
		CustomerID:     customerID,
		SalespersonID:  customer.SalespersonID,
		SubscriptionID: subscriptionID,
		Lines:          lines,
		Total:          models.LinesTotal(lines),
		Status:         models.OrderCreated,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	result, err := oc.db.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to create order", err))
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	return success(c, http.StatusCreated, "Order created successfully", order)
}

// GetOrders lists orders visible to the caller
func (oc *OrderController) GetOrders(c echo.Context) error {
	filter, appErr := salespersonScope(c, oc.db)
	if appErr != nil {
		return fail(c, appErr)
	}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	ctx := c.Request().Context()
	cursor, err := oc.db.Collection("orders").Find(ctx, filter)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to fetch orders", err))
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return fail(c, utils.NewInternalError("failed to decode orders", err))
	}

	return success(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// GetOrder returns one order within the caller's scope
func (oc *OrderController) GetOrder(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}
	filter, appErr := salespersonScope(c, oc.db)
	if appErr != nil {
		return fail(c, appErr)
	}
	filter["_id"] = id

	var order models.Order
	err := oc.db.Collection("orders").FindOne(c.Request().Context(), filter).Decode(&order)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "order not found", ""))
	}

	return success(c, http.StatusOK, "Order retrieved successfully", order)
}

// PayOrder transitions an order to PAID and records the salesperson's
// commission. The call is idempotent: re-paying an already-paid order (a
// retried payment webhook, say) returns the existing commission instead
// of creating a second one — the unique orderId index backstops the race.
func (oc *OrderController) PayOrder(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	ctx := c.Request().Context()

	var order models.Order
	if err := oc.db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return fail(c, utils.FromMongoError(err, "order not found", ""))
	}

	if order.Status == models.OrderPaid {
		var existing models.Commission
		err := oc.db.Collection("commissions").FindOne(ctx, bson.M{"orderId": id}).Decode(&existing)
		if err != nil && err != mongo.ErrNoDocuments {
			return fail(c, utils.NewInternalError("failed to load commission", err))
		}
		return success(c, http.StatusOK, "Order already paid", map[string]interface{}{
			"order":      order,
			"commission": existing,
		})
	}
	if order.Status != models.OrderCreated {
		return fail(c, utils.NewValidationError("only CREATED orders can be paid"))
	}

	now := time.Now()
	_, err := oc.db.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": id, "status": models.OrderCreated},
		bson.M{"$set": bson.M{
			"status":    models.OrderPaid,
			"paidAt":    now,
			"updatedAt": now,
		}},
	)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to mark order paid", err))
	}
	order.Status = models.OrderPaid
	order.PaidAt = &now

	commission, appErr := services.ComputeCommission(&order, oc.commissionRate)
	if appErr != nil {
		return fail(c, appErr)
	}

	result, err := oc.db.Collection("commissions").InsertOne(ctx, commission)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race against a concurrent pay call; converge
			var existing models.Commission
			if err := oc.db.Collection("commissions").FindOne(ctx, bson.M{"orderId": id}).Decode(&existing); err != nil {
				return fail(c, utils.NewInternalError("failed to load commission", err))
			}
			commission = &existing
		} else {
			return fail(c, utils.NewInternalError("failed to create commission", err))
		}
	} else {
		commission.ID = result.InsertedID.(primitive.ObjectID)
	}

	return success(c, http.StatusOK, "Order paid successfully", map[string]interface{}{
		"order":      order,
		"commission": commission,
	})
}
