package config

import (
	"crypto/subtle"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/arkas/internal/llm"
	"github.com/Veraticus/arkas/internal/storage"
)

// EnvPrefix is prepended to every environment override, e.g. ARKAS_LLM_MODEL.
const EnvPrefix = "ARKAS"

// SetDefaults registers default values and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	llmDefaults := llm.DefaultConfig()
	v.SetDefault("llm.enabled", true)
	v.SetDefault("llm.provider", llmDefaults.Provider)
	v.SetDefault("llm.temperature", llm.DefaultTemperature)
	v.SetDefault("llm.top_p", llmDefaults.TopP)
	v.SetDefault("llm.max_tokens", llmDefaults.MaxTokens)
	v.SetDefault("llm.rate_limit", llmDefaults.RateLimit)
	v.SetDefault("llm.timeout", llmDefaults.Timeout)

	v.SetDefault("storage.backend", storage.BackendJSON)
	v.SetDefault("storage.path", filepath.Join(DataDir(), "worksheet.json"))

	v.SetDefault("server.addr", ":8080")
}

// AdminPassword returns the worksheet admin secret, or "" when unset.
func AdminPassword(v *viper.Viper) string {
	return v.GetString("worksheet.admin_password")
}

// CheckAdminPassword compares given against the configured secret in
// constant time. An empty configured secret never matches.
func CheckAdminPassword(configured, given string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(given)) == 1
}
