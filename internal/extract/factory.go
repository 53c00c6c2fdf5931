package extract

import (
	"context"
	"fmt"

	"github.com/dev16mehta/ToolBelt-AI/internal/config"
	"github.com/dev16mehta/ToolBelt-AI/internal/extract/gemini"
	"github.com/dev16mehta/ToolBelt-AI/internal/extract/mock"
	"github.com/dev16mehta/ToolBelt-AI/internal/extract/openai"
)

// NewExtractor constructs the configured provider. Called once at startup;
// the gemini client dials its backend during construction, hence the ctx.
func NewExtractor(ctx context.Context, cfg config.ExtractorConfig) (Extractor, error) {
	switch cfg.Provider {
	case "openai":
		return &classified{inner: openai.NewProvider(cfg.OpenAI)}, nil
	case "gemini":
		provider, err := gemini.NewProvider(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return &classified{inner: provider}, nil
	case "mock":
		return mock.NewExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown extraction provider %q: must be one of openai, gemini, mock", cfg.Provider)
	}
}
