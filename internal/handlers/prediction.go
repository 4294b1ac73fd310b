package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dadidelux/sheng-project/internal/models"
)

// Predictor is the slice of PredictionService the handler needs.
type Predictor interface {
	Predict(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error)
}

// PredictionHandler serves the classification endpoint and the static
// questionnaire definition.
type PredictionHandler struct {
	predictor Predictor
}

// NewPredictionHandler creates a new PredictionHandler
func NewPredictionHandler(predictor Predictor) *PredictionHandler {
	return &PredictionHandler{predictor: predictor}
}

// Predict classifies a single household from questionnaire input.
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.predictor.Predict(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Questionnaire returns the questionnaire field definitions used by the
// prediction form.
func (h *PredictionHandler) Questionnaire(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":      "mvp_v1.0",
		"total_fields": 9,
		"fields": []gin.H{
			{"name": "province_name", "label": "Province", "type": "select",
				"options": []string{"MARINDUQUE", "PALAWAN", "OCCIDENTAL MINDORO", "ORIENTAL MINDORO", "ROMBLON"}},
			{"name": "urb_rur", "label": "Location Type", "type": "radio",
				"options": []gin.H{{"value": 1, "label": "Urban"}, {"value": 2, "label": "Rural"}}},
			{"name": "no_of_indiv", "label": "Number of household members", "type": "number", "min": 1, "max": 20},
			{"name": "no_sleeping_rooms", "label": "Number of sleeping rooms", "type": "number", "min": 0, "max": 10},
			{"name": "house_type", "label": "House type (1=Strong, 6=Weak)", "type": "number", "min": 1, "max": 6},
			{"name": "has_electricity", "label": "Has electricity?", "type": "radio",
				"options": []gin.H{{"value": 1, "label": "Yes"}, {"value": 0, "label": "No"}}},
			{"name": "television", "label": "Television", "type": "radio",
				"options": []gin.H{{"value": 0, "label": "No"}, {"value": 1, "label": "Yes"}, {"value": 2, "label": "Non-functional"}}},
			{"name": "ref", "label": "Refrigerator", "type": "radio",
				"options": []gin.H{{"value": 0, "label": "No"}, {"value": 1, "label": "Yes"}, {"value": 2, "label": "Non-functional"}}},
			{"name": "motorcycle", "label": "Motorcycle", "type": "radio",
				"options": []gin.H{{"value": 0, "label": "No"}, {"value": 1, "label": "Yes"}, {"value": 2, "label": "Non-functional"}}},
		},
	})
}
