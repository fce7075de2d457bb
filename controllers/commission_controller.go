// controllers/commission_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

type CommissionController struct {
	db *mongo.Database
}

func NewCommissionController(db *mongo.Database) *CommissionController {
	return &CommissionController{db: db}
}

// GetCommissions lists commissions visible to the caller
func (cc *CommissionController) GetCommissions(c echo.Context) error {
	filter, appErr := salespersonScope(c, cc.db)
	if appErr != nil {
		return fail(c, appErr)
	}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	ctx := c.Request().Context()
	cursor, err := cc.db.Collection("commissions").Find(ctx, filter)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to fetch commissions", err))
	}
	defer cursor.Close(ctx)

	commissions := []models.Commission{}
	if err := cursor.All(ctx, &commissions); err != nil {
		return fail(c, utils.NewInternalError("failed to decode commissions", err))
	}

	return success(c, http.StatusOK, "Commissions retrieved successfully", commissions)
}

// GetCommission returns one commission within the caller's scope
func (cc *CommissionController) GetCommission(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}
	filter, appErr := salespersonScope(c, cc.db)
	if appErr != nil {
		return fail(c, appErr)
	}
	filter["_id"] = id

	var commission models.Commission
	err := cc.db.Collection("commissions").FindOne(c.Request().Context(), filter).Decode(&commission)
	if err != nil {
		return fail(c, utils.FromMongoError(err, "commission not found", ""))
	}

	return success(c, http.StatusOK, "Commission retrieved successfully", commission)
}

// ApproveCommission transitions PENDING -> APPROVED
func (cc *CommissionController) ApproveCommission(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	ctx := c.Request().Context()
	now := time.Now()

	result, err := cc.db.Collection("commissions").UpdateOne(ctx,
		bson.M{"_id": id, "status": models.CommissionPending},
		bson.M{"$set": bson.M{
			"status":     models.CommissionApproved,
			"approvedAt": now,
			"updatedAt":  now,
		}},
	)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to approve commission", err))
	}
	if result.MatchedCount == 0 {
		return cc.transitionConflict(c, ctx, id, "only PENDING commissions can be approved")
	}

	return success(c, http.StatusOK, "Commission approved successfully", nil)
}

// PayCommission transitions APPROVED -> PAID and stamps a payout reference
func (cc *CommissionController) PayCommission(c echo.Context) error {
	id, appErr := pathObjectID(c, "id")
	if appErr != nil {
		return fail(c, appErr)
	}

	ctx := c.Request().Context()
	now := time.Now()
	payoutRef := uuid.NewString()

	result, err := cc.db.Collection("commissions").UpdateOne(ctx,
		bson.M{"_id": id, "status": models.CommissionApproved},
		bson.M{"$set": bson.M{
			"status":    models.CommissionPaid,
			"paidAt":    now,
			"payoutRef": payoutRef,
			"updatedAt": now,
		}},
	)
	if err != nil {
		return fail(c, utils.NewInternalError("failed to pay commission", err))
	}
	if result.MatchedCount == 0 {
		return cc.transitionConflict(c, ctx, id, "only APPROVED commissions can be paid")
	}

	return success(c, http.StatusOK, "Commission paid successfully", map[string]string{
		"payoutRef": payoutRef,
	})
}

// transitionConflict distinguishes a missing commission from one in the
// wrong status for the requested transition.
func (cc *CommissionController) transitionConflict(c echo.Context, ctx context.Context, id primitive.ObjectID, message string) error {
	count, err := cc.db.Collection("commissions").CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fail(c, utils.NewInternalError("failed to load commission", err))
	}
	if count == 0 {
		return fail(c, utils.NewNotFoundError("commission not found"))
	}
	return fail(c, utils.NewValidationError(message))
}
