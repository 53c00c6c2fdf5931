package model

import "math"

// Pair wraps the two independently trained regressors behind the bundle.
// It is read-only after construction; concurrent PredictCost/PredictTime
// calls with different vectors are safe.
type Pair struct {
	bundle *Bundle
}

// NewPair builds the model pair from a validated bundle.
func NewPair(b *Bundle) *Pair {
	return &Pair{bundle: b}
}

// Columns returns the number of feature columns the pair expects.
func (p *Pair) Columns() int { return len(p.bundle.Columns) }

// Version returns the bundle's semantic version.
func (p *Pair) Version() string { return p.bundle.Version }

// PredictCost runs the gradient-boosted cost model. The raw output is in
// log1p space; it is inverted with expm1 and clamped at zero, since
// inversion near zero can produce tiny negative values.
func (p *Pair) PredictCost(x []float64) (float64, error) {
	raw, err := p.bundle.Cost.Predict(x, len(p.bundle.Columns))
	if err != nil {
		return 0, err
	}
	cost := math.Expm1(raw)
	if cost < 0 {
		cost = 0
	}
	return cost, nil
}

// PredictTime standardizes the vector with the frozen training scaler and
// runs the linear time model. Output is already in days.
func (p *Pair) PredictTime(x []float64) (float64, error) {
	scaled, err := p.bundle.Scaler.Standardize(x)
	if err != nil {
		return 0, err
	}
	return p.bundle.Time.Predict(scaled)
}
