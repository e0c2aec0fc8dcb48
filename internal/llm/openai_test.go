package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantBaseURL string
		wantModel   string
		wantErr     bool
	}{
		{
			name:        "groq is the default provider",
			config:      Config{APIKey: "test-key"},
			wantBaseURL: GroqBaseURL,
			wantModel:   DefaultGroqModel,
		},
		{
			name:        "openai provider",
			config:      Config{Provider: "OpenAI", APIKey: "test-key"},
			wantBaseURL: OpenAIBaseURL,
			wantModel:   DefaultOpenAIModel,
		},
		{
			name:        "custom base url and model",
			config:      Config{Provider: "groq", APIKey: "k", BaseURL: "http://localhost:9999/v1/", Model: "llama"},
			wantBaseURL: "http://localhost:9999/v1",
			wantModel:   "llama",
		},
		{
			name:    "missing API key",
			config:  Config{Provider: "groq"},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "carrier-pigeon", APIKey: "k"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			cc, ok := client.(*chatClient)
			require.True(t, ok)
			assert.Equal(t, tt.wantBaseURL, cc.baseURL)
			assert.Equal(t, tt.wantModel, cc.model)
			assert.InDelta(t, 0.7, cc.temperature, 0.0001)
			assert.InDelta(t, 0.9, cc.topP, 0.0001)
			assert.Equal(t, 512, cc.maxTokens)
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *chatClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newChatClient(Config{
		BaseURL:   server.URL + "/openai/v1",
		APIKey:    "secret-key",
		Model:     "test-model",
		MaxTokens: 256,
		RateLimit: 600,
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{
		"id":    "chatcmpl-1",
		"model": "test-model",
		"choices": []map[string]any{
			{"index": 0, "finish_reason": "stop", "message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func TestChatClient_Complete(t *testing.T) {
	var gotBody chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &gotBody))

		writeCompletion(t, w, "Alokasi Anda cukup sehat.")
	})

	text, err := client.Complete(context.Background(), "Analisis keuangan")
	require.NoError(t, err)
	assert.Equal(t, "Alokasi Anda cukup sehat.", text)

	assert.Equal(t, "test-model", gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "Analisis keuangan", gotBody.Messages[0].Content)
	assert.Equal(t, 256, gotBody.MaxTokens)
	assert.InDelta(t, 0.7, gotBody.Temperature, 0.0001)
	assert.InDelta(t, 0.9, gotBody.TopP, 0.0001)
}

func TestChatClient_ZeroTemperatureIsSent(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		writeCompletion(t, w, "ok")
	}))
	t.Cleanup(server.Close)

	client, err := newChatClient(Config{
		BaseURL:     server.URL,
		APIKey:      "secret-key",
		Model:       "test-model",
		Temperature: Float(0),
		RateLimit:   600,
	})
	require.NoError(t, err)
	assert.Zero(t, client.temperature)

	_, err = client.Complete(context.Background(), "halo")
	require.NoError(t, err)
	require.Contains(t, raw, "temperature")
	assert.InDelta(t, 0.0, raw["temperature"], 0.0001)
}

func TestChatClient_CompleteFailures(t *testing.T) {
	tests := []struct {
		handler http.HandlerFunc
		wantIs  error
		name    string
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
			},
			wantIs: ErrAPIStatus,
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantIs: ErrAPIStatus,
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
			},
			wantIs: ErrNoChoices,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			text, err := client.Complete(context.Background(), "prompt")
			require.Error(t, err)
			assert.Empty(t, text)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestChatClient_APIErrorCarriesStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	})

	_, err := client.Complete(context.Background(), "prompt")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "slow down", apiErr.Body)
}

func TestChatClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := newChatClient(Config{BaseURL: url, APIKey: "k", Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2)
	rl.now = func() time.Time { return now }
	rl.lastRefill = now

	assert.True(t, rl.tryAcquire())
	assert.True(t, rl.tryAcquire())
	assert.False(t, rl.tryAcquire())

	// Two per minute refills one token every 30 seconds.
	now = now.Add(30 * time.Second)
	assert.True(t, rl.tryAcquire())
	assert.False(t, rl.tryAcquire())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, rl.wait(ctx), context.Canceled)
}
