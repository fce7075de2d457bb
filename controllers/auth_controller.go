// controllers/auth_controller.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/MuhammadZain243/commission-subscription-backend/middleware"
	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

type AuthController struct {
	db         *mongo.Database
	bcryptCost int
}

func NewAuthController(db *mongo.Database, bcryptCost int) *AuthController {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthController{db: db, bcryptCost: bcryptCost}
}

type registerRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required"`
	ManagerID string `json:"managerId,omitempty"`
}

// Register creates a new user account
func (ac *AuthController) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, utils.NewValidationError("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, &utils.AppError{Kind: utils.ErrValidation, Message: "validation failed", Details: err.Error()})
	}
	if !models.ValidRole(req.Role) {
		return fail(c, utils.NewValidationError("role must be ADMIN, MANAGER or SALESPERSON"))
	}

	// Only salespeople report to a manager
	var managerID *primitive.ObjectID
	if req.ManagerID != "" {
		if req.Role != models.RoleSalesperson {
			return fail(c, utils.NewValidationError("only salespeople can have a managerId"))
		}
		id, err := primitive.ObjectIDFromHex(req.ManagerID)
		if err != nil {
			return fail(c, utils.NewValidationError("invalid managerId"))
		}
		managerID = &id
	}

	ctx := c.Request().Context()

	if managerID != nil {
		count, err := ac.db.Collection("users").CountDocuments(ctx, bson.M{
			"_id":  *managerID,
			"role": models.RoleManager,
		})
		if err != nil {
			return fail(c, utils.NewInternalError("failed to verify manager", err))
		}
		if count == 0 {
			return fail(c, utils.NewNotFoundError("manager not found"))
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), ac.bcryptCost)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to hash password", err))
	}

	now := time.Now()
	user := models.User{
		Role:      req.Role,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  string(hashed),
		Name:      strings.TrimSpace(req.Name),
		ManagerID: managerID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := ac.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "user not found", "email already exists"))
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	return success(c, http.StatusCreated, "User registered successfully", user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a JWT
func (ac *AuthController) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, utils.NewValidationError("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, &utils.AppError{Kind: utils.ErrValidation, Message: "validation failed", Details: err.Error()})
	}

	ctx := c.Request().Context()

	var user models.User
	err := ac.db.Collection("users").FindOne(ctx, bson.M{
		"email": strings.ToLower(strings.TrimSpace(req.Email)),
	}).Decode(&user)
	if err != nil {
		// Same response for unknown email and wrong password
		return fail(c, utils.NewAuthError("invalid email or password"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return fail(c, utils.NewAuthError("invalid email or password"))
	}

	if !user.IsActive {
		return fail(c, utils.NewAuthError("user account is inactive"))
	}

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to generate token", err))
	}

	return success(c, http.StatusOK, "Login successful", map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the presented token
func (ac *AuthController) Logout(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == "" || token == auth {
		return fail(c, utils.NewAuthError("no token provided"))
	}

	middleware.BlacklistToken(token, time.Now().Add(24*time.Hour))

	return success(c, http.StatusOK, "Logged out successfully", nil)
}

// PlannedEndpoints lists the auth flows not implemented yet
func (ac *AuthController) PlannedEndpoints(c echo.Context) error {
	return success(c, http.StatusOK, "Auth route placeholder", map[string]interface{}{
		"endpoints": []string{
			"POST /api/auth/refresh-token",
			"POST /api/auth/forgot-password",
			"POST /api/auth/reset-password",
		},
	})
}
