package llm

import (
	"atomic_sensei_backend/internal/config"
	"context"
	"fmt"
)

// NewProvider builds the configured backend wrapped as
// caller → retry → instrumentation → backend.
func NewProvider(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini", "":
		base, err = NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	case "openai":
		base, err = NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "mock":
		return WithInstrumentation(NewMockProvider()), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithInstrumentation(base), DefaultRetryConfig(cfg.MaxAttempts)), nil
}
