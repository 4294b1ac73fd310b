package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dadidelux/sheng-project/internal/models"
)

// TargetingProvider is the slice of TargetingService the handler needs.
type TargetingProvider interface {
	Coverage(ctx context.Context) ([]models.CoverageMetrics, error)
	Efficiency(ctx context.Context) ([]models.EfficiencyMetrics, error)
}

// TargetingHandler serves the province-level analytics reports.
type TargetingHandler struct {
	targeting TargetingProvider
}

// NewTargetingHandler creates a new TargetingHandler
func NewTargetingHandler(targeting TargetingProvider) *TargetingHandler {
	return &TargetingHandler{targeting: targeting}
}

// Coverage returns 4Ps coverage metrics by province.
func (h *TargetingHandler) Coverage(c *gin.Context) {
	metrics, err := h.targeting.Coverage(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Efficiency returns targeting efficiency metrics by province.
func (h *TargetingHandler) Efficiency(c *gin.Context) {
	metrics, err := h.targeting.Efficiency(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
