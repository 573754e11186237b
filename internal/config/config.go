package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     int
	LogLevel string

	LLMProvider     string
	LLMAPIKey       string
	LLMBaseURL      string
	LLMModel        string
	AnthropicAPIKey string
	AnthropicModel  string
	LLMMaxTokens    int
	LLMTimeout      time.Duration

	BreakerMaxFailures int
	BreakerCooldown    time.Duration

	BatchConcurrency int
	RulesFile        string
	EnrichDueDates   bool

	RedisURL string
	CacheTTL time.Duration

	NatsURL   string
	NatsToken string
}

func Load() Config {
	return Config{
		Port:     envInt("TRIAGE_PORT", 8760),
		LogLevel: envStr("LOG_LEVEL", "info"),

		LLMProvider:     envStr("LLM_PROVIDER", "openai"),
		LLMAPIKey:       envStr("LLM_API_KEY", envStr("GROQ_API_KEY", "")),
		LLMBaseURL:      envStr("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMModel:        envStr("LLM_MODEL", "openai/gpt-oss-120b"),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		LLMMaxTokens:    envInt("LLM_MAX_TOKENS", 2048),
		LLMTimeout:      envDuration("LLM_TIMEOUT", 120*time.Second),

		BreakerMaxFailures: envInt("BREAKER_MAX_FAILURES", 5),
		BreakerCooldown:    envDuration("BREAKER_COOLDOWN", 30*time.Second),

		BatchConcurrency: envInt("BATCH_CONCURRENCY", 1),
		RulesFile:        envStr("RULES_FILE", ""),
		EnrichDueDates:   envBool("ENRICH_DUE_DATES", false),

		RedisURL: envStr("REDIS_URL", ""),
		CacheTTL: envDuration("CACHE_TTL", 30*time.Minute),

		NatsURL:   envStr("NATS_URL", ""),
		NatsToken: envStr("NATS_TOKEN", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
