package assist

import (
	"context"
	"fmt"

	"brotech_admin/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Gemini generates text through the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// FromConfig builds the assistant. A missing key is logged and leaves the
// assistant unconfigured instead of stopping the process.
func FromConfig(ctx context.Context, cfg config.GeminiConfig) *Assistant {
	if cfg.APIKey == "" {
		zap.L().Warn("GEMINI_API_KEY not set, AI features are disabled")
		return New(nil)
	}
	g, err := NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		zap.L().Error("AI client could not be created", zap.Error(err))
		return New(nil)
	}
	return New(g)
}
