package handler

import (
	"net/http"

	"github.com/gdugdh24/cofounder-backend/internal/usecase/health"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUseCase *health.HealthUseCase
}

func NewHealthHandler(healthUseCase *health.HealthUseCase) *HealthHandler {
	return &HealthHandler{
		healthUseCase: healthUseCase,
	}
}

// Live handles GET /health
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	resp := h.healthUseCase.Readiness(c.Request.Context())
	if !resp.Ready() {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
