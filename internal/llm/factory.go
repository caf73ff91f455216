package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/leerkit/internal/store"
)

// Middleware decorates a Provider. Extra middleware passed to NewProvider
// sits closest to the base provider, so it observes every attempt.
type Middleware func(Provider) Provider

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger, extra ...Middleware) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Wrap(base, cfg.Retry, eventRepo, logger, extra...), nil
}

// Wrap applies the standard middleware chain:
// caller → retry → logging → extra → base.
func Wrap(base Provider, retry RetryConfig, eventRepo store.EventRepo, logger *zap.Logger, extra ...Middleware) Provider {
	p := base
	for _, mw := range extra {
		p = mw(p)
	}
	logged := WithLogging(p, eventRepo, logger)
	return WithRetry(logged, retry)
}
