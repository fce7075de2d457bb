// controllers/dashboard_controller.go
package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MuhammadZain243/commission-subscription-backend/middleware"
	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/repositories"
	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

type DashboardController struct {
	reports *repositories.ReportRepository
}

func NewDashboardController(reports *repositories.ReportRepository) *DashboardController {
	return &DashboardController{reports: reports}
}

// AdminDashboard returns the organization-wide rollup
func (dc *DashboardController) AdminDashboard(c echo.Context) error {
	since, appErr := parseSince(c)
	if appErr != nil {
		return fail(c, appErr)
	}

	report, err := dc.reports.AdminDashboard(c.Request().Context(), repositories.WindowStart(since))
	if err != nil {
		return fail(c, asAppError(err))
	}

	return success(c, http.StatusOK, "Admin dashboard retrieved successfully", report)
}

// ManagerDashboard returns the rollup for one manager's team. Managers may
// only fetch their own team; admins may fetch any.
func (dc *DashboardController) ManagerDashboard(c echo.Context) error {
	managerID, appErr := dc.scopeID(c, models.RoleManager)
	if appErr != nil {
		return fail(c, appErr)
	}

	since, appErr := parseSince(c)
	if appErr != nil {
		return fail(c, appErr)
	}

	report, err := dc.reports.ManagerDashboard(c.Request().Context(), managerID, repositories.WindowStart(since))
	if err != nil {
		return fail(c, asAppError(err))
	}

	return success(c, http.StatusOK, "Manager dashboard retrieved successfully", report)
}

// SalespersonDashboard returns the rollup for one salesperson. A
// salesperson may only fetch themselves; admins may fetch anyone.
func (dc *DashboardController) SalespersonDashboard(c echo.Context) error {
	salespersonID, appErr := dc.scopeID(c, models.RoleSalesperson)
	if appErr != nil {
		return fail(c, appErr)
	}

	since, appErr := parseSince(c)
	if appErr != nil {
		return fail(c, appErr)
	}

	report, err := dc.reports.SalespersonDashboard(c.Request().Context(), salespersonID, repositories.WindowStart(since))
	if err != nil {
		return fail(c, asAppError(err))
	}

	return success(c, http.StatusOK, "Salesperson dashboard retrieved successfully", report)
}

// scopeID resolves the dashboard subject: the :id path param when present
// (admins only, or the caller fetching themselves), the caller otherwise.
func (dc *DashboardController) scopeID(c echo.Context, ownRole string) (primitive.ObjectID, *utils.AppError) {
	caller, appErr := callerID(c)
	if appErr != nil {
		return primitive.NilObjectID, appErr
	}

	raw := c.Param("id")
	if raw == "" {
		if middleware.ExtractRole(c) != ownRole {
			return primitive.NilObjectID, utils.NewValidationError("id is required")
		}
		return caller, nil
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, utils.NewNotFoundError("invalid id")
	}

	if middleware.ExtractRole(c) != models.RoleAdmin && id != caller {
		return primitive.NilObjectID, &utils.AppError{
			Kind:    utils.ErrAuth,
			Message: "cannot access another user's dashboard",
		}
	}
	return id, nil
}

// asAppError narrows an error from the report repository. Everything it
// returns is already typed; anything else is unexpected.
func asAppError(err error) *utils.AppError {
	if appErr, ok := err.(*utils.AppError); ok {
		return appErr
	}
	return utils.NewInternalError("dashboard query failed", err)
}
