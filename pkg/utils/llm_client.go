package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenerationRequest is a single text-in/text-out call to a language model.
type GenerationRequest struct {
	Prompt      string
	Model       string // empty uses the client default
	Temperature float32
	JSONOnly    bool
}

// LLMClient is the generation backend used by the itinerary and quiz pipelines.
type LLMClient interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	Close() error
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	name := req.Model
	if name == "" {
		name = c.model
	}

	m := c.client.GenerativeModel(name)
	m.SetTemperature(req.Temperature)
	if req.JSONOnly {
		m.ResponseMIMEType = "application/json"
	}

	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyModelResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrEmptyModelResponse
	}
	return out, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// NewLLMClient selects a backend by provider name ("gemini" or "openai").
func NewLLMClient(ctx context.Context, provider, apiKey, model, baseURL string) (LLMClient, error) {
	switch strings.ToLower(provider) {
	case "gemini", "":
		return NewGeminiClient(ctx, apiKey, model)
	case "openai":
		return NewOpenAIClient(apiKey, model, baseURL), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
