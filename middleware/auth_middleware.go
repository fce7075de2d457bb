// middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MuhammadZain243/commission-subscription-backend/models"
)

// RequireRole checks if the authenticated user has one of the allowed roles
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := ExtractRole(c)

			if role == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Status:  "error",
					Message: "Authentication failed: role not found",
				})
			}

			for _, allowed := range allowedRoles {
				if role == allowed {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, models.ErrorResponse{
				Status:  "error",
				Message: "Access denied for your role",
			})
		}
	}
}

// ExtractRole gets the caller's role set by the JWT middleware
func ExtractRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok {
		return role
	}
	if claims := GetUserFromToken(c); claims != nil {
		return claims.Role
	}
	return ""
}

// ExtractUserID gets the caller's user id set by the JWT middleware
func ExtractUserID(c echo.Context) string {
	if id, ok := c.Get("userId").(string); ok {
		return id
	}
	if claims := GetUserFromToken(c); claims != nil {
		return claims.UserID
	}
	return ""
}
