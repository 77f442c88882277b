package genai

import (
	"context"
	"fmt"

	"stat-practice/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GeminiClient implements domain.TextGenerator against the Gemini API
// through langchaingo. It is the only place that talks to the model;
// everything above it works with prompt strings and completion text.
type GeminiClient struct {
	llm llms.Model
}

// NewGeminiClient creates a connected Gemini text generator.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("Gemini model name cannot be empty")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{llm: llm}, nil
}

// Generate implements domain.TextGenerator.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(0.2))
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return completion, nil
}

var _ domain.TextGenerator = (*GeminiClient)(nil)
