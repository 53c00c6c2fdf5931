// Package schema holds the canonical definition of every input feature the
// trained models understand. The registry is built once from the artifact
// bundle at startup and is immutable afterwards.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// ErrUnknownFeature indicates a record referenced a feature name that is
// not in the registry.
var ErrUnknownFeature = errors.New("unknown feature")

// FeatureSpec describes one input feature: its kind, its legal values and
// the fallback used when a record omits it.
type FeatureSpec struct {
	Name string `json:"name"`
	Kind string `json:"kind"`

	// Ranks maps ordinal values to their integer rank. Ordinal only.
	Ranks map[string]int `json:"ranks,omitempty"`

	// Categories is the full training-time vocabulary. Categorical only.
	// Baseline names the category dropped during one-hot encoding; it has
	// no column of its own and encodes as an all-zero block.
	Categories []string `json:"categories,omitempty"`
	Baseline   string   `json:"baseline,omitempty"`

	// Default is substituted when a record omits the feature: a category
	// name for ordinal/categorical features, a number for numeric ones.
	Default any `json:"default"`
}

// Registry resolves feature names to their specs. Safe for concurrent use
// once constructed.
type Registry struct {
	specs map[string]FeatureSpec
	order []string
}

// New builds a registry from feature specs, preserving their order.
func New(specs []FeatureSpec) (*Registry, error) {
	r := &Registry{
		specs: make(map[string]FeatureSpec, len(specs)),
		order: make([]string, 0, len(specs)),
	}
	for _, spec := range specs {
		if err := validateSpec(spec); err != nil {
			return nil, fmt.Errorf("feature %q: %w", spec.Name, err)
		}
		if _, dup := r.specs[spec.Name]; dup {
			return nil, fmt.Errorf("feature %q: duplicate spec", spec.Name)
		}
		r.specs[spec.Name] = spec
		r.order = append(r.order, spec.Name)
	}
	return r, nil
}

func validateSpec(spec FeatureSpec) error {
	if spec.Name == "" {
		return errors.New("name is required")
	}
	switch spec.Kind {
	case models.KindOrdinal:
		if len(spec.Ranks) == 0 {
			return errors.New("ordinal feature needs a rank table")
		}
	case models.KindCategorical:
		if len(spec.Categories) == 0 {
			return errors.New("categorical feature needs a vocabulary")
		}
		if spec.Baseline != "" && !contains(spec.Categories, spec.Baseline) {
			return fmt.Errorf("baseline %q not in vocabulary", spec.Baseline)
		}
	case models.KindNumeric:
		// No extra constraints: numeric ranges are not contractually bounded.
	default:
		return fmt.Errorf("unsupported kind %q", spec.Kind)
	}
	return nil
}

// Resolve returns the spec for name, or ErrUnknownFeature.
func (r *Registry) Resolve(name string) (FeatureSpec, error) {
	spec, ok := r.specs[name]
	if !ok {
		return FeatureSpec{}, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
	return spec, nil
}

// KindOf returns the kind of the named feature.
func (r *Registry) KindOf(name string) (string, error) {
	spec, err := r.Resolve(name)
	if err != nil {
		return "", err
	}
	return spec.Kind, nil
}

// AllowedValues returns the legal values for an ordinal or categorical
// feature, ordered by rank for ordinals.
func (r *Registry) AllowedValues(name string) ([]string, error) {
	spec, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	switch spec.Kind {
	case models.KindOrdinal:
		values := make([]string, 0, len(spec.Ranks))
		for v := range spec.Ranks {
			values = append(values, v)
		}
		sort.Slice(values, func(i, j int) bool {
			return spec.Ranks[values[i]] < spec.Ranks[values[j]]
		})
		return values, nil
	case models.KindCategorical:
		out := make([]string, len(spec.Categories))
		copy(out, spec.Categories)
		return out, nil
	default:
		return nil, nil
	}
}

// Names returns all feature names in registry (training) order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered features.
func (r *Registry) Len() int { return len(r.order) }

// ValidateRecord checks an untrusted record field-by-field against the
// registry and returns a normalized copy: string values for ordinal and
// categorical features, float64 for numeric ones. Unknown feature names
// are rejected; type mismatches are reported with the offending field.
// Missing fields stay missing; the encoder substitutes defaults.
func (r *Registry) ValidateRecord(record models.JobRecord) (models.JobRecord, error) {
	out := make(models.JobRecord, len(record))
	for name, raw := range record {
		spec, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		switch spec.Kind {
		case models.KindNumeric:
			n, ok := asNumber(raw)
			if !ok {
				return nil, fmt.Errorf("feature %q: expected a number, got %T", name, raw)
			}
			out[name] = n
		default:
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("feature %q: expected a string, got %T", name, raw)
			}
			out[name] = s
		}
	}
	return out, nil
}

// asNumber coerces the numeric representations produced by JSON decoding
// and by Go callers into a float64.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
