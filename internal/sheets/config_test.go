package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidation(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name    string
		errMsg  string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "service account",
			mutate: func(c *Config) { c.ServiceAccountPath = "/path/to/key.json" },
		},
		{
			name: "oauth credentials",
			mutate: func(c *Config) {
				c.ClientID = "test-client"
				c.ClientSecret = "secret"
				c.RefreshToken = "refresh"
			},
		},
		{
			name: "partial oauth credentials",
			mutate: func(c *Config) {
				c.ClientID = "test-client"
				c.RefreshToken = "test-token"
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "both methods",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/path/to/key.json"
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "refresh"
			},
			wantErr: true,
			errMsg:  "multiple authentication methods",
		},
		{
			name: "zero retry delay is valid",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/path/to/key.json"
				c.RetryAttempts = 0
				c.RetryDelay = 0
			},
		},
		{
			name: "negative retry delay",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/path/to/key.json"
				c.RetryDelay = -1 * time.Second
			},
			wantErr: true,
			errMsg:  "retry delay cannot be negative",
		},
		{
			name: "zero batch size",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/path/to/key.json"
				c.BatchSize = 0
			},
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name: "missing sheet title",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/path/to/key.json"
				c.SheetTitle = ""
			},
			wantErr: true,
			errMsg:  "sheet title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigHasAuth(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.HasAuth())

	cfg.ClientID, cfg.ClientSecret = "id", "secret"
	assert.False(t, cfg.HasAuth())

	cfg.RefreshToken = "refresh"
	assert.True(t, cfg.HasAuth())
}
