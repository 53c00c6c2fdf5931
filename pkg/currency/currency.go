// Package currency converts model outputs from the training currency into
// the secondary display currency at an injected exchange rate.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Converter applies a fixed exchange rate with decimal arithmetic, so
// repeated conversions never accumulate binary floating point drift.
type Converter struct {
	rate decimal.Decimal
}

// NewConverter parses a positive decimal exchange rate (e.g. "0.0056").
func NewConverter(rate string) (*Converter, error) {
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("parse exchange rate %q: %w", rate, err)
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("exchange rate must be positive")
	}
	return &Converter{rate: d}, nil
}

// Rate returns the configured exchange rate as a string.
func (c *Converter) Rate() string { return c.rate.String() }

// Convert multiplies an amount in the primary currency by the rate and
// rounds half-up to two decimal places.
func (c *Converter) Convert(amount float64) float64 {
	converted := decimal.NewFromFloat(amount).Mul(c.rate).Round(2)
	f, _ := converted.Float64()
	return f
}

// Round2 rounds an amount in the primary currency to two decimal places.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}
