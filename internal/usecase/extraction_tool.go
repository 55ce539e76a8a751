package usecase

import (
	"context"

	"github.com/shopassist/backend/internal/domain"
)

// SystemPrompt steers the model into emitting the ProductRequest schema
const SystemPrompt = `You are a multilingual shopping assistant that extracts product information from user text.
Always output clean, standardized English JSON for database usage.

You must:
- Translate any non-English (e.g. Urdu, Hindi, Roman Urdu) color or name into English.
- Keep consistent English color names (e.g., "neela" -> "blue", "laal" -> "red").
- Recognize numeric words like "ek", "do", "teen" etc. as 1, 2, 3.
- Fill missing values as null.

There are only two categories:
- "shoes": for footwear-related items.
- "other": for everything else.

Output Format:

{
  "products": [
    {
      "category": "shoes" | "other",
      "name": "<item name in English>",
      "size_or_weight": "<size, weight, or null>",
      "color": "<color in English or null>",
      "quantity": <integer or null>
    }
  ]
}

Only respond with valid JSON.`

// DefaultTemperature keeps extraction output stable between calls
const DefaultTemperature = 0.2

const (
	extractToolName        = "extract_product_info"
	extractToolDescription = "Extract structured product details from an unstructured shopping request. " +
		"Colors, names and categories are normalized to English."
)

// ExtractProductInfoTool sends the user's utterance to the model under the
// fixed system prompt and returns the model's text untouched
type ExtractProductInfoTool struct {
	client      domain.ChatCompleter
	model       string
	temperature float64
}

// NewExtractProductInfoTool binds the tool to a client and model
func NewExtractProductInfoTool(client domain.ChatCompleter, model string) *ExtractProductInfoTool {
	return &ExtractProductInfoTool{
		client:      client,
		model:       model,
		temperature: DefaultTemperature,
	}
}

// WithTemperature overrides the sampling temperature
func (t *ExtractProductInfoTool) WithTemperature(temperature float64) *ExtractProductInfoTool {
	t.temperature = temperature
	return t
}

// Name returns the tool name
func (t *ExtractProductInfoTool) Name() string {
	return extractToolName
}

// Description returns what the tool does
func (t *ExtractProductInfoTool) Description() string {
	return extractToolDescription
}

// Execute performs one chat-completion call. The output is not parsed or
// validated; errors from the client are returned as is.
func (t *ExtractProductInfoTool) Execute(ctx context.Context, input string) (string, error) {
	return t.client.Complete(ctx, domain.ChatRequest{
		Model: t.model,
		Messages: []domain.ChatMessage{
			{Role: domain.RoleSystem, Content: SystemPrompt},
			{Role: domain.RoleUser, Content: input},
		},
		Temperature: t.temperature,
	})
}
