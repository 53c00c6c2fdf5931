// Package extract turns natural-language job descriptions into structured
// feature records via an LLM provider. Provider output is untrusted: it is
// parsed defensively here and validated against the schema registry before
// any inference runs.
package extract

import (
	"context"
	"errors"

	"github.com/dev16mehta/ToolBelt-AI/internal/extract/prompt"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// Sentinel errors for extraction failures. ErrExtractionFailed is the
// umbrella callers use to distinguish "could not understand the request"
// from "could not price the request".
var (
	ErrExtractionFailed    = errors.New("feature extraction failed")
	ErrProviderUnavailable = errors.New("extraction provider unavailable")
	ErrExtractionTimeout   = errors.New("feature extraction timeout")
	ErrInvalidResponse     = prompt.ErrInvalidResponse
)

// Extractor is the interface every LLM integration must implement.
// Never call a specific provider directly — always inject this interface.
type Extractor interface {
	// Extract proposes a feature record for a job description.
	Extract(ctx context.Context, description string) (models.JobRecord, error)
	// Name returns the provider identifier (e.g. "openai", "gemini").
	Name() string
}
