// controllers/user_controller.go
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

type UserController struct {
	db *mongo.Database
}

func NewUserController(db *mongo.Database) *UserController {
	return &UserController{db: db}
}

// GetUsers lists users, optionally filtered by ?role=
func (uc *UserController) GetUsers(c echo.Context) error {
	filter := bson.M{}
	if role := c.QueryParam("role"); role != "" {
		if !models.ValidRole(role) {
			return fail(c, utils.NewValidationError("unknown role filter"))
		}
		filter["role"] = role
	}

	ctx := c.Request().Context()
	cursor, err := uc.db.Collection("users").Find(ctx, filter)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to fetch users", err))
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return fail(c, utils.NewInternalError("failed to decode users", err))
	}

	return success(c, http.StatusOK, "Users retrieved successfully", users)
}

// GetUser returns one user by id
func (uc *UserController) GetUser(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	var user models.User
	err := uc.db.Collection("users").FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "user not found", ""))
	}

	return success(c, http.StatusOK, "User retrieved successfully", user)
}

type updateUserRequest struct {
	Name      *string `json:"name,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
	ManagerID *string `json:"managerId,omitempty"`
}

// UpdateUser updates mutable profile fields
func (uc *UserController) UpdateUser(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, utils.NewValidationError("invalid request body"))
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}
	if req.ManagerID != nil {
		managerID, err := primitive.ObjectIDFromHex(*req.ManagerID)
		if err != nil {
			return fail(c, utils.NewValidationError("invalid managerId"))
		}
		// The managerId invariant: only salespeople report to a manager
		var target models.User
		if err := uc.db.Collection("users").FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&target); err != nil {
			return fail(c, utils.FromMongoError(err, "user not found", ""))
		}
		if target.Role != models.RoleSalesperson {
			return fail(c, utils.NewValidationError("only salespeople can have a managerId"))
		}
		update["managerId"] = managerID
	}

	result, err := uc.db.Collection("users").UpdateOne(
		c.Request().Context(),
		bson.M{"_id": id},
		bson.M{"$set": update},
	)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to update user", err))
	}
	if result.MatchedCount == 0 {
		return fail(c, utils.NewNotFoundError("user not found"))
	}

	return success(c, http.StatusOK, "User updated successfully", nil)
}

// DeleteUser removes a user account
func (uc *UserController) DeleteUser(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	result, err := uc.db.Collection("users").DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return fail(c, utils.NewInternalError("failed to delete user", err))
	}
	if result.DeletedCount == 0 {
		return fail(c, utils.NewNotFoundError("user not found"))
	}

	return success(c, http.StatusOK, "User deleted successfully", nil)
}

// GetReps lists the salespeople reporting to a manager. A manager may
// only list their own team; admins may list any.
func (uc *UserController) GetReps(c echo.Context) error {
	managerID, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	if middleware.ExtractRole(c) != models.RoleAdmin {
		caller, appErr := callerID(c)
		if appErr != nil {
			return fail(c, appErr)
		}
		if managerID != caller {
			return fail(c, utils.NewAuthError("cannot list another manager's reps"))
		}
	}

	ctx := c.Request().Context()
	cursor, err := uc.db.Collection("users").Find(ctx, bson.M{
		"role":      models.RoleSalesperson,
		"managerId": managerID,
	})
	if err != nil {
		return fail(c, utils.NewInternalError("failed to fetch reps", err))
	}
	defer cursor.Close(ctx)

	reps := []models.User{}
	if err := cursor.All(ctx, &reps); err != nil {
		return fail(c, utils.NewInternalError("failed to decode reps", err))
	}

	return success(c, http.StatusOK, "Reps retrieved successfully", reps)
}
