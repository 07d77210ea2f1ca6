package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be > 0 (got %d)", c.Upload.MaxBytes)
	}
	if strings.TrimSpace(c.Upload.FormField) == "" {
		return errors.New("upload.form_field must not be empty")
	}

	if c.Admin.TokenHash != "" {
		if _, err := bcrypt.Cost([]byte(c.Admin.TokenHash)); err != nil {
			return fmt.Errorf("admin.token_hash is not a bcrypt hash: %w", err)
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	switch l.Provider {
	case ProviderAnthropic, ProviderGemini, ProviderOpenAI, ProviderNone:
	default:
		return fmt.Errorf("unknown provider %q", l.Provider)
	}
	if !l.Remote() {
		return nil
	}
	if l.APIKey == "" && l.Provider != ProviderOpenAI {
		return fmt.Errorf("api_key is required for provider %s", l.Provider)
	}
	if l.Provider == ProviderOpenAI && l.APIKey == "" && l.BaseURL == "" {
		return errors.New("openai provider needs api_key or a self-hosted base_url")
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", l.Timeout)
	}
	return nil
}

func (s *SearchConfig) validate() error {
	if s.FilterRowCap <= 0 {
		return fmt.Errorf("filter_row_cap must be > 0 (got %d)", s.FilterRowCap)
	}
	if s.DefaultAggregateLim <= 0 {
		return fmt.Errorf("default_aggregate_lim must be > 0 (got %d)", s.DefaultAggregateLim)
	}
	if s.QualityReportLimit <= 0 {
		return fmt.Errorf("quality_report_limit must be > 0 (got %d)", s.QualityReportLimit)
	}
	return nil
}
