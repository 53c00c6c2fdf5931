// Package encode maps raw job records into the fixed-width numeric vectors
// the trained models consume. Column order is the frozen training-time
// artifact; the encoder reproduces it exactly or fails.
package encode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dev16mehta/ToolBelt-AI/internal/schema"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// ErrEncoding indicates a record value that cannot be encoded: an ordinal
// outside its rank table or a value of the wrong type. Ordinals fail
// closed because rank magnitude matters to the models and there is no
// safe numeric fallback.
var ErrEncoding = errors.New("encoding error")

// column is one precomputed entry of the encoding plan.
type column struct {
	feature  string
	kind     string
	ranks    map[string]int // ordinal
	category string         // one-hot
	defValue any
}

// Encoder turns job records into feature vectors. It is pure and
// stateless beyond the immutable plan it was built from, so a single
// encoder serves concurrent requests.
type Encoder struct {
	registry *schema.Registry
	plan     []column
}

// New builds an encoder for the given registry and frozen column order.
// Every column must resolve to exactly one registered feature.
func New(reg *schema.Registry, columns []string) (*Encoder, error) {
	plan := make([]column, 0, len(columns))
	for _, name := range columns {
		col, err := resolveColumn(reg, name)
		if err != nil {
			return nil, err
		}
		plan = append(plan, col)
	}
	return &Encoder{registry: reg, plan: plan}, nil
}

func resolveColumn(reg *schema.Registry, name string) (column, error) {
	if spec, err := reg.Resolve(name); err == nil {
		switch spec.Kind {
		case models.KindOrdinal:
			return column{feature: name, kind: spec.Kind, ranks: spec.Ranks, defValue: spec.Default}, nil
		case models.KindNumeric:
			return column{feature: name, kind: spec.Kind, defValue: spec.Default}, nil
		default:
			return column{}, fmt.Errorf("column %q: categorical feature needs one-hot columns", name)
		}
	}

	// One-hot columns are named <feature>_<category>.
	for _, feature := range reg.Names() {
		spec, _ := reg.Resolve(feature)
		if spec.Kind != models.KindCategorical || !strings.HasPrefix(name, feature+"_") {
			continue
		}
		category := strings.TrimPrefix(name, feature+"_")
		for _, known := range spec.Categories {
			if known == category {
				return column{feature: feature, kind: spec.Kind, category: category, defValue: spec.Default}, nil
			}
		}
	}
	return column{}, fmt.Errorf("column %q does not resolve to a registered feature", name)
}

// Width returns the length of every encoded vector.
func (e *Encoder) Width() int { return len(e.plan) }

// Encode validates the record against the registry and produces the
// feature vector in training column order. Missing fields take their
// registered defaults, so the empty record encodes to a valid
// all-defaults vector. A categorical value outside the training
// vocabulary leaves its one-hot block all zero, matching how unseen
// categories behaved at training time.
func (e *Encoder) Encode(record models.JobRecord) ([]float64, error) {
	normalized, err := e.registry.ValidateRecord(record)
	if err != nil {
		if errors.Is(err, schema.ErrUnknownFeature) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	vec := make([]float64, len(e.plan))
	for i, col := range e.plan {
		value, present := normalized[col.feature]
		if !present {
			value = col.defValue
		}

		switch col.kind {
		case models.KindOrdinal:
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: feature %q: ordinal value must be a string", ErrEncoding, col.feature)
			}
			rank, ok := col.ranks[s]
			if !ok {
				return nil, fmt.Errorf("%w: feature %q: value %q is not a known rank", ErrEncoding, col.feature, s)
			}
			vec[i] = float64(rank)

		case models.KindNumeric:
			n, ok := toFloat(value)
			if !ok {
				return nil, fmt.Errorf("%w: feature %q: numeric value required", ErrEncoding, col.feature)
			}
			vec[i] = n

		case models.KindCategorical:
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: feature %q: categorical value must be a string", ErrEncoding, col.feature)
			}
			if s == col.category {
				vec[i] = 1
			}
		}
	}
	return vec, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
