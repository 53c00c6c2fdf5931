// Package estimate orchestrates the inference pipeline: feature extraction,
// encoding, the cost and time models, and currency conversion.
package estimate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dev16mehta/ToolBelt-AI/internal/cache"
	"github.com/dev16mehta/ToolBelt-AI/internal/encode"
	"github.com/dev16mehta/ToolBelt-AI/internal/extract"
	"github.com/dev16mehta/ToolBelt-AI/internal/model"
	"github.com/dev16mehta/ToolBelt-AI/internal/schema"
	"github.com/dev16mehta/ToolBelt-AI/pkg/currency"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// ErrEmptyDescription is returned when the caller submits a blank job
// description.
var ErrEmptyDescription = errors.New("job description must not be empty")

// Service runs predictions against a loaded model bundle. All fields are
// set once at construction; the service is safe for concurrent use.
type Service struct {
	registry  *schema.Registry
	encoder   *encode.Encoder
	pair      *model.Pair
	converter *currency.Converter
	extractor extract.Extractor
	cache     cache.Cache
	timeout   time.Duration
	cacheTTL  time.Duration
}

// New builds a Service from a validated bundle. The registry and encoder are
// derived from the bundle so the column order in play is always the order
// the models were trained with.
func New(bundle *model.Bundle, converter *currency.Converter, extractor extract.Extractor, c cache.Cache, timeout, cacheTTL time.Duration) (*Service, error) {
	registry, err := schema.New(bundle.Features)
	if err != nil {
		return nil, fmt.Errorf("build schema registry: %w", err)
	}
	encoder, err := encode.New(registry, bundle.Columns)
	if err != nil {
		return nil, fmt.Errorf("build encoder: %w", err)
	}

	return &Service{
		registry:  registry,
		encoder:   encoder,
		pair:      model.NewPair(bundle),
		converter: converter,
		extractor: extractor,
		cache:     c,
		timeout:   timeout,
		cacheTTL:  cacheTTL,
	}, nil
}

// Version reports the loaded bundle's semantic version.
func (s *Service) Version() string { return s.pair.Version() }

// Width reports the encoded feature vector length.
func (s *Service) Width() int { return s.encoder.Width() }

// FeatureNames lists the registered feature names in registry order.
func (s *Service) FeatureNames() []string { return s.registry.Names() }

// Provider reports the configured extraction provider name.
func (s *Service) Provider() string { return s.extractor.Name() }

// Predict encodes a feature record and runs both models. Validation and
// encoding errors pass through unwrapped so callers can map them with
// errors.Is.
func (s *Service) Predict(ctx context.Context, record models.JobRecord) (*models.Estimate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec, err := s.encoder.Encode(record)
	if err != nil {
		return nil, err
	}

	costPrimary, err := s.pair.PredictCost(vec)
	if err != nil {
		return nil, err
	}
	timeDays, err := s.pair.PredictTime(vec)
	if err != nil {
		return nil, err
	}

	return &models.Estimate{
		CostPrimary:   currency.Round2(costPrimary),
		CostSecondary: s.converter.Convert(costPrimary),
		TimeDays:      currency.Round2(timeDays),
		Features:      s.effectiveRecord(record),
	}, nil
}

// EstimateFromText extracts a feature record from a free-text description
// and predicts on it. Extraction results are cached by content hash so a
// repeated description skips the LLM round trip.
func (s *Service) EstimateFromText(ctx context.Context, description string) (*models.Estimate, error) {
	normalized := normalizeDescription(description)
	if normalized == "" {
		return nil, ErrEmptyDescription
	}

	record, ok := s.cachedRecord(ctx, normalized)
	if !ok {
		extracted, err := s.extractRecord(ctx, description)
		if err != nil {
			return nil, err
		}
		record = extracted
		s.storeRecord(ctx, normalized, record)
	}

	return s.Predict(ctx, record)
}

func (s *Service) extractRecord(ctx context.Context, description string) (models.JobRecord, error) {
	extractCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.extractor.Extract(extractCtx, description)
	if err != nil {
		return nil, err
	}

	// The provider output is untrusted even after parsing.
	normalized, err := s.registry.ValidateRecord(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrInvalidResponse, err)
	}
	return normalized, nil
}

// cachedRecord looks up a previous extraction. Cache failures degrade to a
// miss; they never fail the request.
func (s *Service) cachedRecord(ctx context.Context, normalized string) (models.JobRecord, bool) {
	if s.cache == nil {
		return nil, false
	}

	key := cache.ExtractionKey(s.extractor.Name(), normalized)
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("extraction cache lookup failed", "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var record models.JobRecord
	if err := json.Unmarshal(data, &record); err != nil {
		slog.Warn("corrupt extraction cache entry", "key", key, "error", err)
		return nil, false
	}
	return record, true
}

func (s *Service) storeRecord(ctx context.Context, normalized string, record models.JobRecord) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	key := cache.ExtractionKey(s.extractor.Name(), normalized)
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		slog.Warn("extraction cache write failed", "error", err)
	}
}

// effectiveRecord reports the full record the models actually saw: the
// caller's normalized values overlaid on the registry defaults.
func (s *Service) effectiveRecord(record models.JobRecord) models.JobRecord {
	normalized, err := s.registry.ValidateRecord(record)
	if err != nil {
		// Predict already validated; unreachable in practice.
		normalized = models.JobRecord{}
	}

	out := make(models.JobRecord, s.registry.Len())
	for _, name := range s.registry.Names() {
		spec, specErr := s.registry.Resolve(name)
		if specErr != nil {
			continue
		}
		if v, present := normalized[name]; present {
			out[name] = v
			continue
		}
		out[name] = spec.Default
	}
	return out
}

// normalizeDescription collapses whitespace and lowercases so trivially
// different phrasings share a cache entry.
func normalizeDescription(description string) string {
	return strings.ToLower(strings.Join(strings.Fields(description), " "))
}
