package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/arkas/internal/common"
	"github.com/Veraticus/arkas/internal/llm"
)

// LoadLLMConfig builds the chat-completion client configuration. The API key
// comes from llm.api_key (or ARKAS_LLM_API_KEY), then from the provider's
// conventional variable.
func LoadLLMConfig(v *viper.Viper) (llm.Config, error) {
	cfg := llm.DefaultConfig()

	cfg.Provider = strings.ToLower(v.GetString("llm.provider"))
	switch cfg.Provider {
	case "", llm.ProviderGroq:
		cfg.Provider = llm.ProviderGroq
	case llm.ProviderOpenAI:
		cfg.BaseURL = llm.OpenAIBaseURL
		cfg.Model = llm.DefaultOpenAIModel
	default:
		return llm.Config{}, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}

	if s := v.GetString("llm.base_url"); s != "" {
		cfg.BaseURL = s
	}
	if s := v.GetString("llm.model"); s != "" {
		cfg.Model = s
	}
	if v.IsSet("llm.temperature") {
		t := v.GetFloat64("llm.temperature")
		if t < 0 || t > 2 {
			return llm.Config{}, fmt.Errorf("%w: llm.temperature %v outside 0-2", common.ErrInvalidConfig, t)
		}
		cfg.Temperature = llm.Float(t)
	}
	if f := v.GetFloat64("llm.top_p"); f > 0 {
		cfg.TopP = f
	}
	if n := v.GetInt("llm.max_tokens"); n > 0 {
		cfg.MaxTokens = n
	}
	if n := v.GetInt("llm.rate_limit"); n > 0 {
		cfg.RateLimit = n
	}
	if d := v.GetDuration("llm.timeout"); d > 0 {
		cfg.Timeout = d
	}

	cfg.APIKey = v.GetString("llm.api_key")
	if cfg.APIKey == "" {
		switch cfg.Provider {
		case llm.ProviderOpenAI:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		default:
			cfg.APIKey = os.Getenv("GROQ_API_KEY")
		}
	}

	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("%w: %w", common.ErrMissingConfig, llm.ErrMissingAPIKey)
	}
	return cfg, nil
}

// LLMEnabled reports whether text generation should be attempted at all.
func LLMEnabled(v *viper.Viper) bool {
	return v.GetBool("llm.enabled")
}
