package llm

import (
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/triage/internal/config"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// NewProvider builds the bare provider client selected by cfg.LLMProvider.
func NewProvider(cfg config.Config) (Completer, error) {
	switch cfg.LLMProvider {
	case ProviderOpenAI, "":
		if cfg.LLMAPIKey == "" {
			return nil, fmt.Errorf("LLM_API_KEY (or GROQ_API_KEY) is required for the openai provider")
		}
		return NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMMaxTokens, cfg.LLMTimeout), nil
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.LLMMaxTokens, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

// Stack wraps a provider as provider → breaker → cache → metrics. cache may
// be nil.
func Stack(provider Completer, cfg config.Config, cache Cache, logger *slog.Logger) Completer {
	var c Completer = NewBreaker(provider, uint32(max(cfg.BreakerMaxFailures, 1)), cfg.BreakerCooldown, logger)
	if cache != nil {
		c = NewCached(c, cache, cfg.CacheTTL, logger)
	}
	return NewInstrumented(c)
}
