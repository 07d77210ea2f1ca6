// Package llm holds the text-completion backends used by the intent classifier.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/config"
)

// ErrDisabled is returned by New when no provider is configured.
var ErrDisabled = errors.New("llm: no provider configured")

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Completer sends one system+user prompt pair and returns the raw reply text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// New builds the backend selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return NewAnthropic(cfg), nil
	case config.ProviderGemini:
		return NewGemini(ctx, cfg)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case config.ProviderNone, "":
		return nil, ErrDisabled
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

func joinText(parts []string) (string, error) {
	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
