package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dadidelux/sheng-project/internal/ml"
	"github.com/dadidelux/sheng-project/internal/models"
	"github.com/dadidelux/sheng-project/pkg/apperrors"
	"github.com/dadidelux/sheng-project/pkg/logger"
)

// PredictionLog records served predictions; insert failures are logged,
// not surfaced.
type PredictionLog interface {
	InsertPrediction(ctx context.Context, rec models.PredictionRecord) error
}

// PredictionService scores questionnaire inputs against the cached model
// and appends each served prediction to the prediction log.
type PredictionService struct {
	loader *ml.Loader
	log    PredictionLog
}

// NewPredictionService creates a new PredictionService
func NewPredictionService(loader *ml.Loader, log PredictionLog) *PredictionService {
	return &PredictionService{loader: loader, log: log}
}

// Predict classifies a single household.
func (s *PredictionService) Predict(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error) {
	model, err := s.loader.Get(ctx)
	if err != nil {
		return nil, apperrors.Unavailable("classification model not available", err)
	}

	provinceCode, err := model.EncodeProvince(req.ProvinceName)
	if err != nil {
		if errors.Is(err, ml.ErrUnknownProvince) {
			return nil, apperrors.BadRequest("unknown province: " + req.ProvinceName)
		}
		return nil, apperrors.Internal(err)
	}

	// Feature order must match training order.
	features := []float64{
		provinceCode,
		float64(req.UrbRur),
		float64(req.NoOfIndiv),
		float64(req.NoSleepingRooms),
		float64(req.HouseType),
		float64(req.HasElectricity),
		float64(req.Television),
		float64(req.Ref),
		float64(req.Motorcycle),
	}

	class, pPoor, err := model.Predict(features)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	resp := &models.PredictionResponse{
		PredictionID:       uuid.New().String(),
		PredictedStatus:    class,
		PredictedLabel:     "Non-Poor",
		ProbabilityPoor:    pPoor,
		ProbabilityNonPoor: 1 - pPoor,
		Probability:        1 - pPoor,
		ModelVersion:       model.Version(),
		Recommendation:     "Not eligible for 4Ps",
	}
	if class == 1 {
		resp.PredictedLabel = "Poor"
		resp.Probability = pPoor
		resp.Recommendation = "Eligible for 4Ps program"
	}

	if s.log != nil {
		rec := models.PredictionRecord{
			PredictionID:           resp.PredictionID,
			PredictionDate:         time.Now().UTC(),
			ProvinceName:           req.ProvinceName,
			UrbRur:                 req.UrbRur,
			NoOfIndiv:              req.NoOfIndiv,
			NoSleepingRooms:        req.NoSleepingRooms,
			HouseType:              req.HouseType,
			HasElectricity:         req.HasElectricity,
			Television:             req.Television,
			Ref:                    req.Ref,
			Motorcycle:             req.Motorcycle,
			PredictedPovertyStatus: class,
			PredictionProbability:  pPoor,
			ModelVersion:           model.Version(),
		}
		if err := s.log.InsertPrediction(ctx, rec); err != nil {
			logger.Warn("failed to record prediction", "prediction_id", resp.PredictionID, "error", err)
		}
	}

	return resp, nil
}
