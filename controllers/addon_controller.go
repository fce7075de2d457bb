// controllers/addon_controller.go
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

type AddOnController struct {
	db *mongo.Database
}

func NewAddOnController(db *mongo.Database) *AddOnController {
	return &AddOnController{db: db}
}

type addOnRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Active      *bool   `json:"active,omitempty"`
}

// updateAddOnRequest uses pointers so absent fields are distinguishable
// from zero values, matching updatePlanRequest.
type updateAddOnRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// CreateAddOn adds a one-time purchasable item to the catalog
func (oc *AddOnController) CreateAddOn(c echo.Context) error {
	var req addOnRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, utils.NewValidationError("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, &utils.AppError{Kind: utils.ErrValidation, Message: "validation failed", Details: err.Error()})
	}
	if appErr := models.ValidatePrice(req.Price); appErr != nil {
		return fail(c, appErr)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	addon := models.AddOn{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := oc.db.Collection("addons").InsertOne(c.Request().Context(), addon)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "add-on not found", "add-on name already exists"))
	}
	addon.ID = result.InsertedID.(primitive.ObjectID)

	return success(c, http.StatusCreated, "Add-on created successfully", addon)
}

// GetAddOns lists the add-on catalog
func (oc *AddOnController) GetAddOns(c echo.Context) error {
	ctx := c.Request().Context()
	cursor, err := oc.db.Collection("addons").Find(ctx, bson.M{})
	if err != nil {
		return fail(c, utils.NewInternalError("failed to fetch add-ons", err))
	}
	defer cursor.Close(ctx)

	addons := []models.AddOn{}
	if err := cursor.All(ctx, &addons); err != nil {
		return fail(c, utils.NewInternalError("failed to decode add-ons", err))
	}

	return success(c, http.StatusOK, "Add-ons retrieved successfully", addons)
}

// GetAddOn returns one add-on
func (oc *AddOnController) GetAddOn(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	var addon models.AddOn
	err := oc.db.Collection("addons").FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&addon)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "add-on not found", ""))
	}

	return success(c, http.StatusOK, "Add-on retrieved successfully", addon)
}

// UpdateAddOn updates catalog fields
func (oc *AddOnController) UpdateAddOn(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	var req updateAddOnRequest
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
	if req.Price != nil {
		if appErr := models.ValidatePrice(*req.Price); appErr != nil {
			return fail(c, appErr)
		}
		update["price"] = *req.Price
	}
	if req.Active != nil {
		update["active"] = *req.Active
	}

	result, err := oc.db.Collection("addons").UpdateOne(
		c.Request().Context(),
		bson.M{"_id": id},
		bson.M{"$set": update},
	)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "add-on not found", "add-on name already exists"))
	}
	if result.MatchedCount == 0 {
		return fail(c, utils.NewNotFoundError("add-on not found"))
	}

	return success(c, http.StatusOK, "Add-on updated successfully", nil)
}

// DeleteAddOn removes an add-on from the catalog
func (oc *AddOnController) DeleteAddOn(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	result, err := oc.db.Collection("addons").DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return fail(c, utils.NewInternalError("failed to delete add-on", err))
	}
	if result.DeletedCount == 0 {
		return fail(c, utils.NewNotFoundError("add-on not found"))
	}

	return success(c, http.StatusOK, "Add-on deleted successfully", nil)
}
