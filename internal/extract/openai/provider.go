// Package openai implements feature extraction against the OpenAI
// chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dev16mehta/ToolBelt-AI/internal/config"
	"github.com/dev16mehta/ToolBelt-AI/internal/extract/prompt"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// Provider implements extraction via OpenAI chat completions.
type Provider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewProvider creates an OpenAI extraction provider. Request deadlines are
// controlled by the caller's context, not a client-level timeout.
func NewProvider(cfg config.OpenAIConfig) *Provider {
	return &Provider{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{},
	}
}

func (p *Provider) Name() string { return "openai" }

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *responseFmt  `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFmt struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Extract sends the job description to the chat completions endpoint and
// parses the reply into a feature record.
func (p *Provider) Extract(ctx context.Context, description string) (models.JobRecord, error) {
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: description},
		},
		// Low temperature keeps the vocabulary deterministic.
		Temperature:    0.1,
		ResponseFormat: &responseFmt{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling chat request: %w", err)
	}

	u := p.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling openai: %w", err)
	}
	defer resp.Body.Close()

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("%w: decoding chat response: %v", prompt.ErrInvalidResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		if chatResp.Error != nil {
			return nil, fmt.Errorf("openai error (status %d): %s", resp.StatusCode, chatResp.Error.Message)
		}
		return nil, fmt.Errorf("openai error: status %d", resp.StatusCode)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", prompt.ErrInvalidResponse)
	}

	return prompt.ParseRecord(chatResp.Choices[0].Message.Content)
}
