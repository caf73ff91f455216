package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured is wrapped by Validate when the selected provider has
// no credential.
var ErrNotConfigured = errors.New("API configuratie ontbreekt")

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string `mapstructure:"provider"`

	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// StructuredOutput sends a JSON schema with generation requests so the
	// provider returns validated JSON instead of free text.
	StructuredOutput bool `mapstructure:"structured_output"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`       // Default: "gemini-flash"
	SmartModel string `mapstructure:"smart_model"` // Default: "gemini-pro"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`       // Default: "gpt-4o-mini"
	SmartModel string `mapstructure:"smart_model"` // Default: "gpt-4o"
	BaseURL    string `mapstructure:"base_url"`    // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`       // Default: "claude-haiku"
	SmartModel string `mapstructure:"smart_model"` // Default: "claude-sonnet"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	SmartModel string `mapstructure:"smart_model"`
	BaseURL    string `mapstructure:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	// MaxAttempts counts the first call, so 4 means 3 retries.
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`

	// RateLimitJitter is the upper bound of the random delay added to
	// backoff after a 429.
	RateLimitJitter time.Duration `mapstructure:"rate_limit_jitter"`

	// AttemptTimeout cancels a single in-flight call. Zero disables it.
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
}

// DefaultRetryConfig allows 4 attempts with 1s, 2s, 4s backoff and a 30s
// per-attempt timeout.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     4,
		InitialWait:     1 * time.Second,
		MaxWait:         8 * time.Second,
		Multiplier:      2.0,
		RateLimitJitter: 1 * time.Second,
		AttemptTimeout:  30 * time.Second,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model:      "gemini-flash",
			SmartModel: "gemini-pro",
		},
		OpenAI: OpenAIConfig{
			Model:      "gpt-4o-mini",
			SmartModel: "gpt-4o",
		},
		Anthropic: AnthropicConfig{
			Model:      "claude-haiku",
			SmartModel: "claude-sonnet",
		},
		OpenRouter: OpenRouterConfig{
			Model:      "google/gemini-2.5-flash",
			SmartModel: "google/gemini-2.5-pro",
		},
		Retry: DefaultRetryConfig(),
	}
}

// DiscoverConfig selects the first provider in base that has an API key,
// in priority order Gemini, OpenAI, Anthropic, OpenRouter. Returns
// (base, false) if none has one.
func DiscoverConfig(base Config) (Config, bool) {
	cfg := base
	switch {
	case base.Gemini.APIKey != "":
		cfg.Provider = "gemini"
	case base.OpenAI.APIKey != "":
		cfg.Provider = "openai"
	case base.Anthropic.APIKey != "":
		cfg.Provider = "anthropic"
	case base.OpenRouter.APIKey != "":
		cfg.Provider = "openrouter"
	default:
		return base, false
	}
	return cfg, true
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY is required for the gemini provider", ErrNotConfigured)
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required for the openai provider", ErrNotConfigured)
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("%w: ANTHROPIC_API_KEY is required for the anthropic provider", ErrNotConfigured)
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("%w: OPENROUTER_API_KEY is required for the openrouter provider", ErrNotConfigured)
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
