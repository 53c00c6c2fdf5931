// Package gemini implements feature extraction via the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dev16mehta/ToolBelt-AI/internal/config"
	"github.com/dev16mehta/ToolBelt-AI/internal/extract/prompt"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

const defaultModel = "gemini-2.5-pro"

// Provider implements extraction against the Gemini API backend.
type Provider struct {
	client    *genai.Client
	modelName string
}

// NewProvider creates a Gemini extraction provider.
func NewProvider(ctx context.Context, cfg config.GeminiConfig) (*Provider, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Provider{client: client, modelName: model}, nil
}

func (p *Provider) Name() string { return "gemini" }

// Extract sends the job description to Gemini and parses the reply into a
// feature record.
func (p *Provider) Extract(ctx context.Context, description string) (models.JobRecord, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.New("description must not be empty")
	}

	temperature := float32(0.1)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       &temperature,
		ResponseMIMEType:  "application/json",
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.modelName, genai.Text(description), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return nil, fmt.Errorf("%w: gemini returned empty response", prompt.ErrInvalidResponse)
	}

	return prompt.ParseRecord(output)
}
