// Package ml loads the pre-trained poverty classifier artifact and scores
// feature vectors against it. The artifact bundles the province label
// encoding, the standard-scaler statistics and the linear decision
// function of the trained model, with Platt coefficients for probability
// calibration.
package ml

import (
	"fmt"
	"math"
)

// FeatureCount is the fixed length of the model input vector.
const FeatureCount = 9

// featureNames is the training column order every artifact must declare.
var featureNames = []string{
	"province_name", "urb_rur", "no_of_indiv", "no_sleeping_rooms",
	"house_type", "has_electricity", "television", "ref", "motorcycle",
}

// Artifact is the serialized classifier bundle.
type Artifact struct {
	Version         string    `json:"version"`
	Features        []string  `json:"features"`
	ProvinceClasses []string  `json:"province_classes"` // sorted; index = encoded value
	ScalerMean      []float64 `json:"scaler_mean"`
	ScalerScale     []float64 `json:"scaler_scale"`
	Weights         []float64 `json:"weights"`
	Intercept       float64   `json:"intercept"`
	ProbA           float64   `json:"prob_a"` // Platt sigmoid: p = 1/(1+exp(a*score+b))
	ProbB           float64   `json:"prob_b"`
}

// Model is a validated, read-only classifier handle.
type Model struct {
	art       Artifact
	provinces map[string]int
}

// ErrUnknownProvince is returned when a province name is outside the
// model's label classes.
var ErrUnknownProvince = fmt.Errorf("province not known to the model")

func newModel(art Artifact) (*Model, error) {
	if len(art.Features) != FeatureCount {
		return nil, fmt.Errorf("artifact declares %d features, want %d", len(art.Features), FeatureCount)
	}
	for i, name := range art.Features {
		if name != featureNames[i] {
			return nil, fmt.Errorf("artifact feature[%d] is %q, want %q", i, name, featureNames[i])
		}
	}
	if len(art.ScalerMean) != FeatureCount || len(art.ScalerScale) != FeatureCount || len(art.Weights) != FeatureCount {
		return nil, fmt.Errorf("artifact vectors must have %d entries (mean=%d scale=%d weights=%d)",
			FeatureCount, len(art.ScalerMean), len(art.ScalerScale), len(art.Weights))
	}
	if len(art.ProvinceClasses) == 0 {
		return nil, fmt.Errorf("artifact has no province classes")
	}
	for i, s := range art.ScalerScale {
		if s == 0 {
			return nil, fmt.Errorf("scaler scale[%d] is zero", i)
		}
	}
	provinces := make(map[string]int, len(art.ProvinceClasses))
	for i, name := range art.ProvinceClasses {
		provinces[name] = i
	}
	return &Model{art: art, provinces: provinces}, nil
}

// Version returns the artifact version string.
func (m *Model) Version() string { return m.art.Version }

// Provinces returns the label classes in encoding order.
func (m *Model) Provinces() []string {
	return append([]string(nil), m.art.ProvinceClasses...)
}

// EncodeProvince maps a province name to its label code.
func (m *Model) EncodeProvince(name string) (float64, error) {
	idx, ok := m.provinces[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProvince, name)
	}
	return float64(idx), nil
}

// Predict scores a raw feature vector. It returns the predicted class
// (1 = Poor) and the calibrated probability of the Poor class.
func (m *Model) Predict(features []float64) (int, float64, error) {
	if len(features) != FeatureCount {
		return 0, 0, fmt.Errorf("expected %d features, got %d", FeatureCount, len(features))
	}
	score := m.art.Intercept
	for i, x := range features {
		scaled := (x - m.art.ScalerMean[i]) / m.art.ScalerScale[i]
		score += m.art.Weights[i] * scaled
	}
	pPoor := 1 / (1 + math.Exp(m.art.ProbA*score+m.art.ProbB))
	class := 0
	if pPoor >= 0.5 {
		class = 1
	}
	return class, pPoor, nil
}
