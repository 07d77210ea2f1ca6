package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	LLM       LLMConfig       `yaml:"llm"`
	Search    SearchConfig    `yaml:"search"`
	Upload    UploadConfig    `yaml:"upload"`
	Admin     AdminConfig     `yaml:"admin"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Admin-Token"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	ChatPerMinute   int           `yaml:"chat_per_minute"   env:"RATE_LIMIT_CHAT_PER_MINUTE"   env-default:"30"`
	UploadPerMinute int           `yaml:"upload_per_minute" env:"RATE_LIMIT_UPLOAD_PER_MINUTE" env-default:"5"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATE_LIMIT_CLEANUP_INTERVAL"  env-default:"5m"`
}

// LLM providers accepted by LLMConfig.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderNone      = "none"
)

// LLMConfig selects and configures the text classification backend.
type LLMConfig struct {
	Provider    string        `yaml:"provider"    env:"LLM_PROVIDER"    env-default:"none"`
	Model       string        `yaml:"model"       env:"LLM_MODEL"`
	APIKey      string        `yaml:"api_key"     env:"LLM_API_KEY"`
	BaseURL     string        `yaml:"base_url"    env:"LLM_BASE_URL"`
	Timeout     time.Duration `yaml:"timeout"     env:"LLM_TIMEOUT"     env-default:"20s"`
	MaxTokens   int           `yaml:"max_tokens"  env:"LLM_MAX_TOKENS"  env-default:"500"`
	Temperature float64       `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.1"`
}

// Remote reports whether the provider calls an external API.
func (c LLMConfig) Remote() bool {
	return c.Provider != ProviderNone && c.Provider != ""
}

// SearchConfig holds result-size limits.
type SearchConfig struct {
	FilterRowCap        int `yaml:"filter_row_cap"        env:"SEARCH_FILTER_ROW_CAP"        env-default:"100"`
	DefaultAggregateLim int `yaml:"default_aggregate_lim" env:"SEARCH_DEFAULT_AGGREGATE_LIM" env-default:"10"`
	QualityReportLimit  int `yaml:"quality_report_limit"  env:"SEARCH_QUALITY_REPORT_LIMIT"  env-default:"100"`
}

// UploadConfig holds CSV upload settings.
type UploadConfig struct {
	MaxBytes  int64  `yaml:"max_bytes"  env:"UPLOAD_MAX_BYTES"  env-default:"10485760"`
	FormField string `yaml:"form_field" env:"UPLOAD_FORM_FIELD" env-default:"csvFile"`
}

// AdminConfig guards destructive endpoints. An empty hash disables them.
type AdminConfig struct {
	TokenHash string `yaml:"token_hash" env:"ADMIN_TOKEN_HASH"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
