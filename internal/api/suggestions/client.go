package suggestions

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// AIClient is the slice of the generative model the suggestion service uses.
type AIClient interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

var _ AIClient = (*GeminiClient)(nil)

// GeminiClient wraps the Gemini API behind AIClient.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (ai *GeminiClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return result.Text(), nil
}
