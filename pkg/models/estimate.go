package models

// Estimate is the result of running both regression models over an
// encoded job record. Costs are in base units: primary is the training
// currency (DZD), secondary is primary converted at the configured rate.
type Estimate struct {
	CostPrimary   float64   `json:"cost_primary"`
	CostSecondary float64   `json:"cost_secondary"`
	TimeDays      float64   `json:"time_days"`
	Features      JobRecord `json:"features_used"`
}
