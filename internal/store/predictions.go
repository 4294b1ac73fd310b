package store

import (
	"context"
	"fmt"

	"github.com/dadidelux/sheng-project/internal/models"
	"github.com/dadidelux/sheng-project/pkg/apperrors"
)

const insertPredictionSQL = `
INSERT INTO poverty_predictions (
    prediction_id, prediction_date, province_name, urb_rur, no_of_indiv,
    no_sleeping_rooms, house_type, has_electricity, television, ref,
    motorcycle, predicted_poverty_status, prediction_probability, model_version
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// InsertPrediction appends one row to the prediction log.
func (s *Store) InsertPrediction(ctx context.Context, rec models.PredictionRecord) error {
	_, err := s.pool.Exec(ctx, insertPredictionSQL,
		rec.PredictionID, rec.PredictionDate, rec.ProvinceName, rec.UrbRur,
		rec.NoOfIndiv, rec.NoSleepingRooms, rec.HouseType, rec.HasElectricity,
		rec.Television, rec.Ref, rec.Motorcycle, rec.PredictedPovertyStatus,
		rec.PredictionProbability, rec.ModelVersion)
	if err != nil {
		return apperrors.Store(fmt.Errorf("insert prediction: %w", err))
	}
	return nil
}
