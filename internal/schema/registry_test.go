package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

func testSpecs() []FeatureSpec {
	return []FeatureSpec{
		{
			Name:    "boilerSize",
			Kind:    models.KindOrdinal,
			Ranks:   map[string]int{"small": 0, "medium": 1, "large": 2},
			Default: "small",
		},
		{
			Name:       "toileType",
			Kind:       models.KindCategorical,
			Categories: []string{"Basic-Ceramic", "One-Piece", "Wall-Hung"},
			Baseline:   "Basic-Ceramic",
			Default:    "Basic-Ceramic",
		},
		{
			Name:    "toilet",
			Kind:    models.KindNumeric,
			Default: float64(0),
		},
	}
}

func TestNew_ValidSpecs(t *testing.T) {
	r, err := New(testSpecs())
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"boilerSize", "toileType", "toilet"}, r.Names())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec FeatureSpec
	}{
		{"missing name", FeatureSpec{Kind: models.KindNumeric}},
		{"unsupported kind", FeatureSpec{Name: "x", Kind: "binary"}},
		{"ordinal without ranks", FeatureSpec{Name: "x", Kind: models.KindOrdinal}},
		{"categorical without vocabulary", FeatureSpec{Name: "x", Kind: models.KindCategorical}},
		{
			"baseline outside vocabulary",
			FeatureSpec{Name: "x", Kind: models.KindCategorical, Categories: []string{"a"}, Baseline: "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]FeatureSpec{tt.spec})
			assert.Error(t, err)
		})
	}
}

func TestNew_DuplicateName(t *testing.T) {
	specs := testSpecs()
	specs = append(specs, specs[2])
	_, err := New(specs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestResolve(t *testing.T) {
	r, err := New(testSpecs())
	require.NoError(t, err)

	spec, err := r.Resolve("boilerSize")
	require.NoError(t, err)
	assert.Equal(t, models.KindOrdinal, spec.Kind)

	_, err = r.Resolve("jacuzzi")
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestKindOf(t *testing.T) {
	r, err := New(testSpecs())
	require.NoError(t, err)

	kind, err := r.KindOf("toilet")
	require.NoError(t, err)
	assert.Equal(t, models.KindNumeric, kind)

	_, err = r.KindOf("sauna")
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestAllowedValues(t *testing.T) {
	r, err := New(testSpecs())
	require.NoError(t, err)

	// Ordinals come back in rank order.
	vals, err := r.AllowedValues("boilerSize")
	require.NoError(t, err)
	assert.Equal(t, []string{"small", "medium", "large"}, vals)

	vals, err = r.AllowedValues("toileType")
	require.NoError(t, err)
	assert.Equal(t, []string{"Basic-Ceramic", "One-Piece", "Wall-Hung"}, vals)

	// Numerics have no enumerable values.
	vals, err = r.AllowedValues("toilet")
	require.NoError(t, err)
	assert.Nil(t, vals)
}

func TestValidateRecord(t *testing.T) {
	r, err := New(testSpecs())
	require.NoError(t, err)

	t.Run("normalizes numbers", func(t *testing.T) {
		out, err := r.ValidateRecord(models.JobRecord{"toilet": 2})
		require.NoError(t, err)
		assert.Equal(t, float64(2), out["toilet"])
	})

	t.Run("keeps strings", func(t *testing.T) {
		out, err := r.ValidateRecord(models.JobRecord{"boilerSize": "large"})
		require.NoError(t, err)
		assert.Equal(t, "large", out["boilerSize"])
	})

	t.Run("rejects unknown feature", func(t *testing.T) {
		_, err := r.ValidateRecord(models.JobRecord{"jacuzzi": 1})
		assert.ErrorIs(t, err, ErrUnknownFeature)
	})

	t.Run("rejects wrong types", func(t *testing.T) {
		_, err := r.ValidateRecord(models.JobRecord{"toilet": "two"})
		assert.Error(t, err)

		_, err = r.ValidateRecord(models.JobRecord{"boilerSize": 3})
		assert.Error(t, err)
	})

	t.Run("missing fields stay missing", func(t *testing.T) {
		out, err := r.ValidateRecord(models.JobRecord{})
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
