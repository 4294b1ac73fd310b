package models

import "time"

// PredictionRequest is the questionnaire input for a single household.
type PredictionRequest struct {
	ProvinceName    string `json:"province_name" binding:"required"`
	UrbRur          int    `json:"urb_rur"`           // 1=Urban, 2=Rural
	NoOfIndiv       int    `json:"no_of_indiv"`
	NoSleepingRooms int    `json:"no_sleeping_rooms"`
	HouseType       int    `json:"house_type"`        // 1-6
	HasElectricity  int    `json:"has_electricity"`   // 0/1
	Television      int    `json:"television"`        // 0/1/2
	Ref             int    `json:"ref"`               // 0/1/2
	Motorcycle      int    `json:"motorcycle"`        // 0/1/2
}

// PredictionResponse is the classification result for one request.
type PredictionResponse struct {
	PredictionID       string  `json:"prediction_id"`
	PredictedStatus    int     `json:"predicted_status"` // 0=Non-Poor, 1=Poor
	PredictedLabel     string  `json:"predicted_label"`
	Probability        float64 `json:"probability"`
	ProbabilityPoor    float64 `json:"probability_poor"`
	ProbabilityNonPoor float64 `json:"probability_nonpoor"`
	ModelVersion       string  `json:"model_version"`
	Recommendation     string  `json:"recommendation"`
}

// PredictionRecord is one row of the prediction log table.
type PredictionRecord struct {
	PredictionID           string
	PredictionDate         time.Time
	ProvinceName           string
	UrbRur                 int
	NoOfIndiv              int
	NoSleepingRooms        int
	HouseType              int
	HasElectricity         int
	Television             int
	Ref                    int
	Motorcycle             int
	PredictedPovertyStatus int
	PredictionProbability  float64
	ModelVersion           string
}
