package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/heartmarshall/regatta-backend/internal/config"
)

// DefaultGeminiModel is used when the config leaves the model empty.
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini completes prompts with the Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

// NewGemini creates a Gemini API client from cfg.
func NewGemini(ctx context.Context, cfg config.LLMConfig) (*Gemini, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &Gemini{
		client:      client,
		model:       model,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: float32(cfg.Temperature),
	}, nil
}

// Complete implements Completer.
func (g *Gemini) Complete(ctx context.Context, system, user string) (string, error) {
	content := genai.NewContentFromText(user, genai.RoleUser)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
		MaxOutputTokens:   g.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	return joinText(parts)
}
