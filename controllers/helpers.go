package controllers

import (
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MuhammadZain243/commission-subscription-backend/middleware"
	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

// success writes the standard success envelope
func success(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, models.Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// fail writes the standard error envelope for a typed error. Internal
// errors are logged and surfaced with a safe message; the underlying cause
// is included only in development mode.
func fail(c echo.Context, err *utils.AppError) error {
	if err.Kind == utils.ErrInternal {
		c.Logger().Error(err.Error())
		resp := models.ErrorResponse{
			Status:  "error",
			Message: "Internal server error",
		}
		if env := os.Getenv("ENV"); env == "development" || env == "dev" {
			resp.Details = err.Error()
		}
		return c.JSON(http.StatusInternalServerError, resp)
	}
	return c.JSON(err.HTTPStatus(), models.ErrorResponse{
		Status:  "error",
		Message: err.Message,
		Details: err.Details,
	})
}

// pathObjectID parses the :param path segment as an ObjectID
func pathObjectID(c echo.Context, param string) (primitive.ObjectID, *utils.AppError) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		return primitive.NilObjectID, utils.NewNotFoundError("invalid " + param)
	}
	return id, nil
}

// callerID resolves the authenticated caller's ObjectID from the token
func callerID(c echo.Context) (primitive.ObjectID, *utils.AppError) {
	raw := middleware.ExtractUserID(c)
	if raw == "" {
		return primitive.NilObjectID, utils.NewAuthError("user ID not found in token")
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, utils.NewAuthError("invalid user ID in token")
	}
	return id, nil
}

// parseSince parses the optional ?since= query (YYYY-MM-DD or RFC3339),
// nil when absent.
func parseSince(c echo.Context) (*time.Time, *utils.AppError) {
	raw := c.QueryParam("since")
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, utils.NewValidationError("since must be YYYY-MM-DD or RFC3339")
}
