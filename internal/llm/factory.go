package llm

import (
	"fmt"
	"strings"
	"time"
)

// Provider defaults.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"

	GroqBaseURL   = "https://api.groq.com/openai/v1"
	OpenAIBaseURL = "https://api.openai.com/v1"

	DefaultGroqModel   = "moonshotai/kimi-k2-instruct-0905"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// DefaultTemperature is used when no temperature is configured.
const DefaultTemperature = 0.7

// Float returns a pointer to f, for optional Config fields.
func Float(f float64) *float64 {
	return &f
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderGroq,
		BaseURL:     GroqBaseURL,
		Model:       DefaultGroqModel,
		Temperature: Float(DefaultTemperature),
		TopP:        0.9,
		MaxTokens:   512,
		RateLimit:   60,
		Timeout:     60 * time.Second,
	}
}

// NewClient creates a client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGroq:
		if cfg.BaseURL == "" {
			cfg.BaseURL = GroqBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = DefaultGroqModel
		}
	case ProviderOpenAI:
		if cfg.BaseURL == "" {
			cfg.BaseURL = OpenAIBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return newChatClient(cfg)
}
