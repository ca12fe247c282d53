package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"emotion-audio/internal/app/analysis"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string          `json:"status"`
	Models analysis.Models `json:"models"`
}

// HealthHandler reports the loaded models
type HealthHandler struct {
	models analysis.Models
}

// NewHealthHandler captures the model identifiers once at startup
func NewHealthHandler(service Analyzer) *HealthHandler {
	return &HealthHandler{models: service.Models()}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Models: h.models,
	})
}
