package domain

import (
	"encoding/json"
	"strings"
)

// Product categories understood by the extraction prompt
const (
	CategoryShoes = "shoes"
	CategoryOther = "other"
)

// ProductRequest is one item the user wants to buy.
// Nullable fields stay nil when the model could not tell.
type ProductRequest struct {
	Category     string          `json:"category"`
	Name         *string         `json:"name"`
	SizeOrWeight json.RawMessage `json:"size_or_weight"` // string, number or null
	Color        *string         `json:"color"`
	Quantity     *int            `json:"quantity"`
}

// ExtractionResult is the shape the system prompt asks the model to emit
type ExtractionResult struct {
	Products []ProductRequest `json:"products"`
}

// DecodeExtraction makes a best-effort attempt to read raw model output as an
// ExtractionResult. It is only used to enrich the display; the raw text is
// always what gets shown.
func DecodeExtraction(raw string) (*ExtractionResult, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	var result ExtractionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, false
	}
	if result.Products == nil {
		return nil, false
	}
	return &result, true
}

// IsBlank reports whether a user utterance has no content worth sending
func IsBlank(input string) bool {
	return strings.TrimSpace(input) == ""
}
