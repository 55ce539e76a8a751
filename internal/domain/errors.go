package domain

import "errors"

var (
	// ErrMissingAPIKey is returned when no model provider API key is configured
	ErrMissingAPIKey = errors.New("model provider API key is not configured")

	// ErrInvalidInput is returned when the shopping request is empty or blank
	ErrInvalidInput = errors.New("shopping request is empty")

	// ErrUpstreamFailure is returned when the chat-completion call fails
	ErrUpstreamFailure = errors.New("chat completion request failed")

	// ErrEmptyCompletion is returned when the model returns no choices
	ErrEmptyCompletion = errors.New("chat completion returned no content")

	// ErrRateLimited is returned when a local or upstream rate limit is hit
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnsupportedProvider is returned for an unknown model provider name
	ErrUnsupportedProvider = errors.New("unsupported model provider")
)
