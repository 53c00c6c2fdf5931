package model

import "fmt"

// LinearModel is a ridge regression exported from the training run. It
// operates on the standardized feature space; callers must apply the
// bundle's scaler before prediction.
type LinearModel struct {
	TargetTransform string    `json:"target_transform"`
	Intercept       float64   `json:"intercept"`
	Coefficients    []float64 `json:"coefficients"`
}

// Predict returns the linear model output for an already-standardized
// vector.
func (m *LinearModel) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: got %d features, model expects %d",
			ErrShapeMismatch, len(x), len(m.Coefficients))
	}
	sum := m.Intercept
	for i, c := range m.Coefficients {
		sum += c * x[i]
	}
	return sum, nil
}

// Standardize applies the per-column standardization to a copy of x.
func (s *Scaler) Standardize(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("%w: got %d features, scaler expects %d",
			ErrShapeMismatch, len(x), len(s.Mean))
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = (x[i] - s.Mean[i]) / s.Std[i]
	}
	return out, nil
}
