package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Errors returned by clients.
var (
	ErrMissingAPIKey = errors.New("API key is required")
	ErrAPIStatus     = errors.New("chat completion request failed")
	ErrNoChoices     = errors.New("no completion choices returned")
)

// Client defines the interface for text-generation providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for a chat-completion client.
type Config struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	Temperature *float64 // nil selects the default; 0 is deterministic
	TopP        float64
	MaxTokens   int
	RateLimit   int // requests per minute
	Timeout     time.Duration
}

// APIError is returned when the endpoint answers with a non-200 status.
type APIError struct {
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat completion API error (status %d): %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return ErrAPIStatus
}
