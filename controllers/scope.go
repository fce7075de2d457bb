package controllers

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/labstack/echo/v4"

	"github.com/MuhammadZain243/commission-subscription-backend/middleware"
	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

// salespersonScope builds the ownership filter for the caller's role:
// admin sees everything, a manager sees their direct reports' records, a
// salesperson only their own. Manager scope is resolved through
// users.managerId at call time, never from stored team membership.
func salespersonScope(c echo.Context, db *mongo.Database) (bson.M, *utils.AppError) {
	switch middleware.ExtractRole(c) {
	case models.RoleAdmin:
		return bson.M{}, nil

	case models.RoleManager:
		managerID, appErr := callerID(c)
		if appErr != nil {
			return nil, appErr
		}
		repIDs, appErr := directReportIDs(c, db, managerID)
		if appErr != nil {
			return nil, appErr
		}
		return bson.M{"salespersonId": bson.M{"$in": repIDs}}, nil

	case models.RoleSalesperson:
		userID, appErr := callerID(c)
		if appErr != nil {
			return nil, appErr
		}
		return bson.M{"salespersonId": userID}, nil
	}

	return nil, utils.NewAuthError("unknown role")
}

// directReportIDs lists the salesperson ids reporting to a manager. The
// result is always a non-nil slice so it can feed an $in filter even when
// the team is empty.
func directReportIDs(c echo.Context, db *mongo.Database, managerID primitive.ObjectID) ([]primitive.ObjectID, *utils.AppError) {
	ctx := c.Request().Context()
	cursor, err := db.Collection("users").Find(ctx, bson.M{
		"role":      models.RoleSalesperson,
		"managerId": managerID,
	})
	if err != nil {
		return nil, utils.NewInternalError("failed to resolve team", err)
	}
	defer cursor.Close(ctx)

	var reps []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &reps); err != nil {
		return nil, utils.NewInternalError("failed to decode team", err)
	}

	ids := make([]primitive.ObjectID, 0, len(reps))
	for _, rep := range reps {
		ids = append(ids, rep.ID)
	}
	return ids, nil
}
