package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev16mehta/ToolBelt-AI/internal/schema"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	r, err := schema.New([]schema.FeatureSpec{
		{
			Name:    "boilerSize",
			Kind:    models.KindOrdinal,
			Ranks:   map[string]int{"small": 0, "medium": 1, "large": 2},
			Default: "small",
		},
		{
			Name:    "toilet",
			Kind:    models.KindNumeric,
			Default: float64(0),
		},
		{
			Name:       "toileType",
			Kind:       models.KindCategorical,
			Categories: []string{"Basic-Ceramic", "One-Piece", "Wall-Hung"},
			Baseline:   "Basic-Ceramic",
			Default:    "Basic-Ceramic",
		},
	})
	require.NoError(t, err)
	return r
}

// Column layout mirrors the artifact convention: ordinal and numeric
// features keep their name, one-hot columns append the category, and the
// baseline category has no column.
var testColumns = []string{"boilerSize", "toilet", "toileType_One-Piece", "toileType_Wall-Hung"}

func testEncoder(t *testing.T) *Encoder {
	t.Helper()
	enc, err := New(testRegistry(t), testColumns)
	require.NoError(t, err)
	return enc
}

func TestNew_UnresolvableColumn(t *testing.T) {
	_, err := New(testRegistry(t), []string{"boilerSize", "jacuzziType_Jet"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jacuzziType_Jet")
}

func TestNew_BareCategoricalColumn(t *testing.T) {
	_, err := New(testRegistry(t), []string{"toileType"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one-hot")
}

func TestEncode_Width(t *testing.T) {
	enc := testEncoder(t)
	assert.Equal(t, len(testColumns), enc.Width())

	vec, err := enc.Encode(models.JobRecord{})
	require.NoError(t, err)
	assert.Len(t, vec, enc.Width())
}

func TestEncode_EmptyRecordUsesDefaults(t *testing.T) {
	enc := testEncoder(t)

	vec, err := enc.Encode(models.JobRecord{})
	require.NoError(t, err)
	// small=rank 0, toilet default 0, baseline one-hot block all zero.
	assert.Equal(t, []float64{0, 0, 0, 0}, vec)
}

func TestEncode_FullRecord(t *testing.T) {
	enc := testEncoder(t)

	vec, err := enc.Encode(models.JobRecord{
		"boilerSize": "large",
		"toilet":     float64(3),
		"toileType":  "Wall-Hung",
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 0, 1}, vec)
}

func TestEncode_Deterministic(t *testing.T) {
	enc := testEncoder(t)
	record := models.JobRecord{"boilerSize": "medium", "toilet": float64(1), "toileType": "One-Piece"}

	first, err := enc.Encode(record)
	require.NoError(t, err)
	second, err := enc.Encode(record)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncode_UnseenCategoryIsAllZero(t *testing.T) {
	enc := testEncoder(t)

	unseen, err := enc.Encode(models.JobRecord{"toileType": "Smart-Toilet"})
	require.NoError(t, err)
	omitted, err := enc.Encode(models.JobRecord{})
	require.NoError(t, err)
	assert.Equal(t, omitted, unseen)
}

func TestEncode_BaselineCategoryIsAllZero(t *testing.T) {
	enc := testEncoder(t)

	baseline, err := enc.Encode(models.JobRecord{"toileType": "Basic-Ceramic"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, baseline)
}

func TestEncode_OrdinalOutOfVocabularyFails(t *testing.T) {
	enc := testEncoder(t)

	_, err := enc.Encode(models.JobRecord{"boilerSize": "enormous"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncoding)
	assert.Contains(t, err.Error(), "enormous")
}

func TestEncode_UnknownFeature(t *testing.T) {
	enc := testEncoder(t)

	_, err := enc.Encode(models.JobRecord{"jacuzzi": float64(1)})
	assert.ErrorIs(t, err, schema.ErrUnknownFeature)
}

func TestEncode_WrongTypes(t *testing.T) {
	enc := testEncoder(t)

	_, err := enc.Encode(models.JobRecord{"toilet": "three"})
	assert.ErrorIs(t, err, ErrEncoding)

	_, err = enc.Encode(models.JobRecord{"boilerSize": float64(2)})
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestEncode_NegativeCountPassesThrough(t *testing.T) {
	enc := testEncoder(t)

	// Numeric ranges are not contractually bounded; validation is the
	// caller's concern.
	vec, err := enc.Encode(models.JobRecord{"toilet": float64(-1)})
	require.NoError(t, err)
	assert.Equal(t, float64(-1), vec[1])
}
