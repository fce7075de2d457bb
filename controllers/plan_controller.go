// controllers/plan_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

type PlanController struct {
	db *mongo.Database
}

func NewPlanController(db *mongo.Database) *PlanController {
	return &PlanController{db: db}
}

type planRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	BillingCycle string   `json:"billingCycle" validate:"required"`
	Price        float64  `json:"price"`
	Features     []string `json:"features,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

// updatePlanRequest uses pointers so absent fields are distinguishable
// from zero values: a plan can be repriced to 0 or have its description
// cleared.
type updatePlanRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	BillingCycle *string  `json:"billingCycle,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Features     []string `json:"features,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

// CreatePlan adds a recurring offering to the catalog
func (pc *PlanController) CreatePlan(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, utils.NewValidationError("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, &utils.AppError{Kind: utils.ErrValidation, Message: "validation failed", Details: err.Error()})
	}
	if !models.ValidBillingCycle(req.BillingCycle) {
		return fail(c, utils.NewValidationError("billingCycle must be MONTHLY or YEARLY"))
	}
	if appErr := models.ValidatePrice(req.Price); appErr != nil {
		return fail(c, appErr)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	features := req.Features
	if features == nil {
		features = []string{}
	}

	now := time.Now()
	plan := models.Plan{
		Name:         req.Name,
		Description:  req.Description,
		BillingCycle: req.BillingCycle,
		Price:        req.Price,
		Features:     features,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := pc.db.Collection("plans").InsertOne(c.Request().Context(), plan)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "plan not found", "plan name already exists"))
	}
	plan.ID = result.InsertedID.(primitive.ObjectID)

	return success(c, http.StatusCreated, "Plan created successfully", plan)
}

// GetPlans lists the plan catalog
func (pc *PlanController) GetPlans(c echo.Context) error {
	ctx := c.Request().Context()
	cursor, err := pc.db.Collection("plans").Find(ctx, bson.M{})
	if err != nil {
		return fail(c, utils.NewInternalError("failed to fetch plans", err))
	}
	defer cursor.Close(ctx)

	plans := []models.Plan{}
	if err := cursor.All(ctx, &plans); err != nil {
		return fail(c, utils.NewInternalError("failed to decode plans", err))
	}

	return success(c, http.StatusOK, "Plans retrieved successfully", plans)
}

// GetPlan returns one plan
func (pc *PlanController) GetPlan(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	var plan models.Plan
	err := pc.db.Collection("plans").FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "plan not found", ""))
	}

	return success(c, http.StatusOK, "Plan retrieved successfully", plan)
}

// UpdatePlan updates catalog fields. Price changes never touch existing
// order lines: those carry frozen unit-price snapshots.
func (pc *PlanController) UpdatePlan(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	var req updatePlanRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, utils.NewValidationError("invalid request body"))
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.BillingCycle != nil {
		if !models.ValidBillingCycle(*req.BillingCycle) {
			return fail(c, utils.NewValidationError("billingCycle must be MONTHLY or YEARLY"))
		}
		update["billingCycle"] = *req.BillingCycle
	}
	if req.Price != nil {
		if appErr := models.ValidatePrice(*req.Price); appErr != nil {
			return fail(c, appErr)
		}
		update["price"] = *req.Price
	}
	if req.Features != nil {
		update["features"] = req.Features
	}
	if req.Active != nil {
		update["active"] = *req.Active
	}

	result, err := pc.db.Collection("plans").UpdateOne(
		c.Request().Context(),
		bson.M{"_id": id},
		bson.M{"$set": update},
	)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "plan not found", "plan name already exists"))
	}
	if result.MatchedCount == 0 {
		return fail(c, utils.NewNotFoundError("plan not found"))
	}

	return success(c, http.StatusOK, "Plan updated successfully", nil)
}

// DeletePlan removes a plan from the catalog
func (pc *PlanController) DeletePlan(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	result, err := pc.db.Collection("plans").DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return fail(c, utils.NewInternalError("failed to delete plan", err))
	}
	if result.DeletedCount == 0 {
		return fail(c, utils.NewNotFoundError("plan not found"))
	}

	return success(c, http.StatusOK, "Plan deleted successfully", nil)
}
