package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopassist/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// GenAIClient sends the same chat request through the native Gemini API
type GenAIClient struct {
	client      *genai.Client
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewGenAIClient creates a Gemini API client. baseURL is optional and only
// overrides the SDK's default endpoint.
func NewGenAIClient(ctx context.Context, apiKey, baseURL string, timeout time.Duration, requestsPerMinute int, logger *zap.Logger) (*GenAIClient, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIClient{
		client:      client,
		rateLimiter: newLimiter(requestsPerMinute),
		logger:      logger.Named("genai"),
	}, nil
}

// Complete maps the system message to a system instruction and the user
// message to the request contents
func (g *GenAIClient) Complete(ctx context.Context, req domain.ChatRequest) (string, error) {
	if err := g.rateLimiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	temperature := float32(req.Temperature)
	genConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if system := req.SystemPrompt(); system != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.UserPrompt()), genConfig)
	if err != nil {
		g.logger.Warn("generate content failed", zap.String("model", req.Model), zap.Error(err))
		if isRateLimitError(err) {
			return "", fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}

	if result == nil || len(result.Candidates) == 0 {
		return "", domain.ErrEmptyCompletion
	}

	content := strings.TrimSpace(result.Text())
	g.logger.Debug("generate content finished",
		zap.String("model", req.Model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_len", len(content)))

	return content, nil
}

// isRateLimitError reports whether the API answered 429 RESOURCE_EXHAUSTED
func isRateLimitError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Status == "RESOURCE_EXHAUSTED"
	}
	return false
}
