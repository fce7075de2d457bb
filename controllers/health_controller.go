// controllers/health_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthController struct {
	environment string
	startedAt   time.Time
}

func NewHealthController(environment string) *HealthController {
	return &HealthController{environment: environment, startedAt: time.Now()}
}

// Health is the liveness probe
func (hc *HealthController) Health(c echo.Context) error {
	return success(c, http.StatusOK, "API is running successfully", map[string]interface{}{
		"uptime":      time.Since(hc.startedAt).Seconds(),
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": hc.environment,
	})
}
