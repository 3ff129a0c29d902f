package handlers

import (
	"net/http"

	"github.com/WeatherVane/weather-vane-backend/services"
	"github.com/WeatherVane/weather-vane-backend/types"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthService *services.HealthService
}

func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// LivenessCheck handles kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// HealthCheck godoc
// @Summary Service health
// @Description Reports overall status and database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthCheck
// @Failure 503 {object} types.HealthCheck
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())

	if health.Status == types.HealthStatusDown {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}
