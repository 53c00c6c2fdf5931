// Package mock provides an offline extraction provider for local development
// and tests. It recognizes fixture keywords with a crude heuristic instead of
// calling an LLM.
package mock

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// Extractor is a configurable fake. The zero value panics; use the
// constructors.
type Extractor struct {
	ExtractFunc func(ctx context.Context, description string) (models.JobRecord, error)
}

// NewExtractor returns a mock that derives a record from fixture keywords in
// the description. Deterministic and dependency-free.
func NewExtractor() *Extractor {
	return &Extractor{ExtractFunc: heuristicExtract}
}

// NewFixedExtractor returns a mock that always yields the given record.
func NewFixedExtractor(record models.JobRecord) *Extractor {
	return &Extractor{
		ExtractFunc: func(ctx context.Context, description string) (models.JobRecord, error) {
			return record.Clone(), nil
		},
	}
}

// NewFailingExtractor returns a mock that always fails with err.
func NewFailingExtractor(err error) *Extractor {
	return &Extractor{
		ExtractFunc: func(ctx context.Context, description string) (models.JobRecord, error) {
			return nil, err
		},
	}
}

func (e *Extractor) Name() string { return "mock" }

func (e *Extractor) Extract(ctx context.Context, description string) (models.JobRecord, error) {
	return e.ExtractFunc(ctx, description)
}

// DefaultRecord is the record the heuristic starts from: no fixtures, every
// type at its baseline.
func DefaultRecord() models.JobRecord {
	return models.JobRecord{
		"boilerSize":      "small",
		"radiator":        0,
		"radiatorType":    "COPA_Aluminium",
		"toilet":          0,
		"toileType":       "Basic-Ceramic",
		"washbasin":       0,
		"washbasinType":   "Countertop",
		"bathhub":         0,
		"bathhubType":     "Luxury",
		"showerCabin":     0,
		"showerCabinType": "Basic_Enclosure",
		"Bidet":           0,
		"BidetType":       "Bidet-Ceramic",
		"waterHeater":     0,
		"waterHeaterType": "Electric-30liters",
		"sinkTypeQuality": "poor",
		"sinkCategorie":   "double",
	}
}

var countWords = map[string]string{
	"radiator":     "radiator",
	"toilet":       "toilet",
	"washbasin":    "washbasin",
	"basin":        "washbasin",
	"bathtub":      "bathhub",
	"bath":         "bathhub",
	"shower":       "showerCabin",
	"bidet":        "Bidet",
	"water heater": "waterHeater",
}

func heuristicExtract(_ context.Context, description string) (models.JobRecord, error) {
	record := DefaultRecord()
	lower := strings.ToLower(description)

	for word, feature := range countWords {
		if !strings.Contains(lower, word) {
			continue
		}
		record[feature] = countFor(lower, word)
	}

	if strings.Contains(lower, "large boiler") || strings.Contains(lower, "big boiler") {
		record["boilerSize"] = "big"
	} else if strings.Contains(lower, "medium boiler") {
		record["boilerSize"] = "medium"
	}
	if strings.Contains(lower, "wall-hung toilet") || strings.Contains(lower, "wall hung toilet") {
		record["toileType"] = "Wall-Hung"
	}
	if strings.Contains(lower, "luxury shower") {
		record["showerCabinType"] = "Luxury_Enclosure"
	}
	if strings.Contains(lower, "high quality sink") || strings.Contains(lower, "high-quality sink") {
		record["sinkTypeQuality"] = "high"
	}
	if strings.Contains(lower, "single sink") {
		record["sinkCategorie"] = "single"
	}

	return record, nil
}

// countFor looks for "<n> <word>" and falls back to 1 when the fixture is
// mentioned without a number.
func countFor(lower, word string) int {
	re := regexp.MustCompile(`(\d+)\s+` + regexp.QuoteMeta(word))
	if m := re.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 1
}
