package handler

import (
	"likering/internal/api/response"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	name    string
	version string
}

// NewHealthHandler creates a HealthHandler reporting name and version.
func NewHealthHandler(name, version string) *HealthHandler {
	return &HealthHandler{name: name, version: version}
}

// Health GET /api/health
// @Summary Liveness check
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, "ok", gin.H{
		"status":  "ok",
		"service": h.name,
		"version": h.version,
	})
}
