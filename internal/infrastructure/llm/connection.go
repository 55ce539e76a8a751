package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopassist/backend/internal/domain"
	"go.uber.org/zap"
)

// Provider names accepted by Connect
const (
	ProviderOpenAI = "openai"
	ProviderGenAI  = "genai"
)

// Options describes how to reach the model provider
type Options struct {
	Provider          string
	APIKey            string
	BaseURL           string
	GenAIBaseURL      string // optional override for the native Gemini endpoint
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Connection is a ready client handle plus the model it should be asked for
type Connection struct {
	provider string
	model    string
	client   domain.ChatCompleter
}

// Connect builds the provider client. A missing API key fails before any
// network activity.
func Connect(ctx context.Context, opts Options, logger *zap.Logger) (*Connection, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	provider := opts.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	var (
		client   domain.ChatCompleter
		endpoint string
	)
	switch provider {
	case ProviderOpenAI:
		endpoint = opts.BaseURL
		client = NewOpenAIClient(opts.APIKey, opts.BaseURL, opts.Timeout, opts.RequestsPerMinute, logger)
	case ProviderGenAI:
		endpoint = opts.GenAIBaseURL
		if endpoint == "" {
			endpoint = "sdk default"
		}
		genaiClient, err := NewGenAIClient(ctx, opts.APIKey, opts.GenAIBaseURL, opts.Timeout, opts.RequestsPerMinute, logger)
		if err != nil {
			return nil, err
		}
		client = genaiClient
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, provider)
	}

	logger.Info("model provider configured",
		zap.String("provider", provider),
		zap.String("model", opts.Model),
		zap.String("endpoint", endpoint))

	return &Connection{
		provider: provider,
		model:    opts.Model,
		client:   client,
	}, nil
}

// Model returns the model identifier requests are sent for
func (c *Connection) Model() string {
	return c.model
}

// Provider returns the provider name
func (c *Connection) Provider() string {
	return c.provider
}

// Client returns the chat-completion client
func (c *Connection) Client() domain.ChatCompleter {
	return c.client
}
