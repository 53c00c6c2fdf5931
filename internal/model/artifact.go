// Package model loads the versioned artifact bundle produced at training
// time and runs the two regressors over encoded feature vectors.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dev16mehta/ToolBelt-AI/internal/schema"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// ErrShapeMismatch indicates an encoded vector whose length disagrees with
// what the loaded artifacts expect. It signals version skew between the
// encoder and the model bundle and is never recovered by padding.
var ErrShapeMismatch = errors.New("feature vector shape mismatch")

// Target transforms applied to training labels.
const (
	TransformNone  = "none"
	TransformLog1p = "log1p"
)

// Bundle is the single versioned artifact produced by a training run: both
// models, the frozen encoding tables, the standardization parameters and
// the training-time column order. All parts load and validate together;
// there is no partial load.
type Bundle struct {
	Version  string               `json:"version"`
	Features []schema.FeatureSpec `json:"features"`
	Columns  []string             `json:"columns"`
	Scaler   Scaler               `json:"scaler"`
	Cost     TreeEnsemble         `json:"cost_model"`
	Time     LinearModel          `json:"time_model"`
}

// Scaler holds per-column standardization parameters fit on training data.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Load reads and validates a bundle from a JSON file.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("bundle %q: %w", path, err)
	}
	return &b, nil
}

// Validate cross-checks every part of the bundle against the column order.
// A bundle that fails any check is unusable as a whole.
func (b *Bundle) Validate() error {
	if b.Version == "" {
		return errors.New("missing version")
	}
	n := len(b.Columns)
	if n == 0 {
		return errors.New("missing column order")
	}
	if len(b.Features) == 0 {
		return errors.New("missing feature specs")
	}
	if len(b.Scaler.Mean) != n || len(b.Scaler.Std) != n {
		return fmt.Errorf("scaler has %d/%d parameters for %d columns",
			len(b.Scaler.Mean), len(b.Scaler.Std), n)
	}
	for i, sd := range b.Scaler.Std {
		if sd <= 0 {
			return fmt.Errorf("scaler std for column %q must be positive", b.Columns[i])
		}
	}
	if b.Cost.TargetTransform != TransformLog1p {
		return fmt.Errorf("cost model: unexpected target transform %q", b.Cost.TargetTransform)
	}
	if err := b.Cost.validate(n); err != nil {
		return fmt.Errorf("cost model: %w", err)
	}
	if b.Time.TargetTransform != TransformNone {
		return fmt.Errorf("time model: unexpected target transform %q", b.Time.TargetTransform)
	}
	if len(b.Time.Coefficients) != n {
		return fmt.Errorf("time model has %d coefficients for %d columns",
			len(b.Time.Coefficients), n)
	}
	if err := b.validateColumns(); err != nil {
		return err
	}
	return nil
}

// validateColumns checks that every column in the frozen order is derivable
// from exactly one feature spec, and that every spec contributes at least
// one column. This is the schema-drift guard between training and inference.
func (b *Bundle) validateColumns() error {
	used := make(map[string]bool, len(b.Features))
	specs := make(map[string]schema.FeatureSpec, len(b.Features))
	for _, spec := range b.Features {
		specs[spec.Name] = spec
	}

	for _, col := range b.Columns {
		if spec, ok := specs[col]; ok {
			if spec.Kind == models.KindCategorical {
				return fmt.Errorf("column %q: categorical features cannot be raw columns", col)
			}
			used[col] = true
			continue
		}
		// One-hot columns are named <feature>_<category>.
		name, category, found := splitOneHot(col, specs)
		if !found {
			return fmt.Errorf("column %q does not match any feature spec", col)
		}
		spec := specs[name]
		if category == spec.Baseline {
			return fmt.Errorf("column %q: baseline category must not have a column", col)
		}
		used[name] = true
	}

	for name := range specs {
		if !used[name] {
			return fmt.Errorf("feature %q contributes no columns", name)
		}
	}
	return nil
}

// splitOneHot resolves a one-hot column name against known categorical
// specs. Category names may themselves contain underscores, so the match
// is prefix-based on the feature name.
func splitOneHot(col string, specs map[string]schema.FeatureSpec) (feature, category string, ok bool) {
	for name, spec := range specs {
		if spec.Kind != models.KindCategorical {
			continue
		}
		prefix := name + "_"
		if !strings.HasPrefix(col, prefix) {
			continue
		}
		cat := strings.TrimPrefix(col, prefix)
		for _, known := range spec.Categories {
			if known == cat {
				return name, cat, true
			}
		}
	}
	return "", "", false
}
