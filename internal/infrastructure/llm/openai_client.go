package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopassist/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint,
// including Gemini's compatibility layer
type OpenAIClient struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewOpenAIClient creates a client for the endpoint rooted at baseURL
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration, requestsPerMinute int, logger *zap.Logger) *OpenAIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OpenAIClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		rateLimiter: newLimiter(requestsPerMinute),
		logger:      logger.Named("openai"),
	}
}

// newLimiter paces outbound calls; a non-positive rate disables pacing
func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
}

// Complete sends one chat-completion request. There are no retries: any
// failure is returned to the caller wrapped in a domain error.
func (c *OpenAIClient) Complete(ctx context.Context, req domain.ChatRequest) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		// a cancelled or expired request is not a rate limit
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("User-Agent", "ShopAssist/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("chat completion request failed", zap.String("model", req.Model), zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstreamFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("chat completion returned error status",
			zap.String("model", req.Model),
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(body), 512)))
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: upstream status %d", domain.ErrRateLimited, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstreamFailure, err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUpstreamFailure, completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", domain.ErrEmptyCompletion
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	c.logger.Debug("chat completion finished",
		zap.String("model", req.Model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_len", len(content)))

	return content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
