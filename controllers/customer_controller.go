// controllers/customer_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MuhammadZain243/commission-subscription-backend/middleware"
	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

type CustomerController struct {
	db *mongo.Database
}

func NewCustomerController(db *mongo.Database) *CustomerController {
	return &CustomerController{db: db}
}

type createCustomerRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty"`
	SalespersonID string `json:"salespersonId,omitempty"`
}

// CreateCustomer registers a customer under a salesperson. A salesperson
// always creates under themselves; admins and managers must name the
// owning salesperson.
func (cc *CustomerController) CreateCustomer(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, utils.NewValidationError("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, &utils.AppError{Kind: utils.ErrValidation, Message: "validation failed", Details: err.Error()})
	}

	var salespersonID primitive.ObjectID
	if middleware.ExtractRole(c) == models.RoleSalesperson {
		id, appErr := callerID(c)
		if appErr != nil {
			return fail(c, appErr)
		}
		salespersonID = id
	} else {
		if req.SalespersonID == "" {
			return fail(c, utils.NewValidationError("salespersonId is required"))
		}
		id, err := primitive.ObjectIDFromHex(req.SalespersonID)
		if err != nil {
			return fail(c, utils.NewValidationError("invalid salespersonId"))
		}
		salespersonID = id
	}

	ctx := c.Request().Context()

	count, err := cc.db.Collection("users").CountDocuments(ctx, bson.M{
		"_id":  salespersonID,
		"role": models.RoleSalesperson,
	})
	if err != nil {
		return fail(c, utils.NewInternalError("failed to verify salesperson", err))
	}
	if count == 0 {
		return fail(c, utils.NewNotFoundError("salesperson not found"))
	}

	now := time.Now()
	customer := models.Customer{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		SalespersonID: salespersonID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := cc.db.Collection("customers").InsertOne(ctx, customer)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to create customer", err))
	}
	customer.ID = result.InsertedID.(primitive.ObjectID)

	return success(c, http.StatusCreated, "Customer created successfully", customer)
}

// GetCustomers lists customers visible to the caller
func (cc *CustomerController) GetCustomers(c echo.Context) error {
	filter, appErr := salespersonScope(c, cc.db)
	if appErr != nil {
		return fail(c, appErr)
	}

	ctx := c.Request().Context()
	cursor, err := cc.db.Collection("customers").Find(ctx, filter)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to fetch customers", err))
	}
	defer cursor.Close(ctx)

	customers := []models.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return fail(c, utils.NewInternalError("failed to decode customers", err))
	}

	return success(c, http.StatusOK, "Customers retrieved successfully", customers)
}

// GetCustomer returns one customer if the caller's scope covers it
func (cc *CustomerController) GetCustomer(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}
	filter, appErr := salespersonScope(c, cc.db)
	if appErr != nil {
		return fail(c, appErr)
	}
	filter["_id"] = id

	var customer models.Customer
	err := cc.db.Collection("customers").FindOne(c.Request().Context(), filter).Decode(&customer)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "customer not found", ""))
	}

	return success(c, http.StatusOK, "Customer retrieved successfully", customer)
}

type updateCustomerRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// UpdateCustomer updates customer contact fields within the caller's scope
func (cc *CustomerController) UpdateCustomer(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, utils.NewValidationError("invalid request body"))
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Email != nil {
		update["email"] = *req.Email
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}

	filter, appErr := salespersonScope(c, cc.db)
	if appErr != nil {
		return fail(c, appErr)
	}
	filter["_id"] = id

	result, err := cc.db.Collection("customers").UpdateOne(c.Request().Context(), filter, bson.M{"$set": update})
	if err != nil {
		return fail(c, utils.NewInternalError("failed to update customer", err))
	}
	if result.MatchedCount == 0 {
		return fail(c, utils.NewNotFoundError("customer not found"))
	}

	return success(c, http.StatusOK, "Customer updated successfully", nil)
}

// DeleteCustomer removes a customer within the caller's scope
func (cc *CustomerController) DeleteCustomer(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}
	filter, appErr := salespersonScope(c, cc.db)
	if appErr != nil {
		return fail(c, appErr)
	}
	filter["_id"] = id

	result, err := cc.db.Collection("customers").DeleteOne(c.Request().Context(), filter)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to delete customer", err))
	}
	if result.DeletedCount == 0 {
		return fail(c, utils.NewNotFoundError("customer not found"))
	}

	return success(c, http.StatusOK, "Customer deleted successfully", nil)
}
