package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopassist/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConnect(t *testing.T) {
	t.Run("builds an openai-compatible connection with the configured model", func(t *testing.T) {
		conn, err := Connect(context.Background(), Options{
			APIKey:  "test-api-key",
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai/",
			Model:   "gemini-2.0-flash",
			Timeout: 30 * time.Second,
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "gemini-2.0-flash", conn.Model())
		assert.Equal(t, ProviderOpenAI, conn.Provider())
		assert.IsType(t, &OpenAIClient{}, conn.Client())
	})

	t.Run("builds a genai connection", func(t *testing.T) {
		conn, err := Connect(context.Background(), Options{
			Provider: ProviderGenAI,
			APIKey:   "test-api-key",
			Model:    "gemini-2.0-flash",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, ProviderGenAI, conn.Provider())
		assert.IsType(t, &GenAIClient{}, conn.Client())
	})

	t.Run("fails fast without an API key and makes no network call", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		for _, key := range []string{"", "   "} {
			conn, err := Connect(context.Background(), Options{
				APIKey:  key,
				BaseURL: server.URL,
				Model:   "gemini-2.0-flash",
			}, nil)

			assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
			assert.Nil(t, conn)
		}
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		_, err := Connect(context.Background(), Options{
			Provider: "anthropic",
			APIKey:   "test-api-key",
		}, nil)

		assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
	})

	t.Run("logs the endpoint of the selected provider", func(t *testing.T) {
		tests := []struct {
			name     string
			opts     Options
			endpoint string
		}{
			{
				name:     "openai",
				opts:     Options{Provider: ProviderOpenAI, BaseURL: "https://compat.example/openai/"},
				endpoint: "https://compat.example/openai/",
			},
			{
				name:     "genai with override",
				opts:     Options{Provider: ProviderGenAI, BaseURL: "https://compat.example/openai/", GenAIBaseURL: "https://native.example/"},
				endpoint: "https://native.example/",
			},
			{
				name:     "genai default",
				opts:     Options{Provider: ProviderGenAI, BaseURL: "https://compat.example/openai/"},
				endpoint: "sdk default",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				core, logs := observer.New(zap.InfoLevel)
				tt.opts.APIKey = "test-api-key"
				tt.opts.Model = "gemini-2.0-flash"

				_, err := Connect(context.Background(), tt.opts, zap.New(core))
				require.NoError(t, err)

				entries := logs.FilterMessage("model provider configured").All()
				require.Len(t, entries, 1)
				assert.Equal(t, tt.endpoint, entries[0].ContextMap()["endpoint"])
			})
		}
	})
}
