package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeExtraction(t *testing.T) {
	t.Run("decodes the documented shape", func(t *testing.T) {
		raw := `{"products":[{"category":"shoes","name":"shoes","size_or_weight":"42","color":"red","quantity":2},
			{"category":"other","name":"rice","size_or_weight":5,"color":null,"quantity":null}]}`

		result, ok := DecodeExtraction(raw)
		require.True(t, ok)
		require.Len(t, result.Products, 2)

		shoes := result.Products[0]
		assert.Equal(t, CategoryShoes, shoes.Category)
		require.NotNil(t, shoes.Name)
		assert.Equal(t, "shoes", *shoes.Name)
		assert.JSONEq(t, `"42"`, string(shoes.SizeOrWeight))
		require.NotNil(t, shoes.Color)
		assert.Equal(t, "red", *shoes.Color)
		require.NotNil(t, shoes.Quantity)
		assert.Equal(t, 2, *shoes.Quantity)

		rice := result.Products[1]
		assert.Equal(t, CategoryOther, rice.Category)
		assert.JSONEq(t, `5`, string(rice.SizeOrWeight))
		assert.Nil(t, rice.Color)
		assert.Nil(t, rice.Quantity)
	})

	t.Run("rejects text that is not the shape", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"   ",
			"Sure! Here is your JSON:",
			"```json\n{\"products\":[]}\n```",
			`{"items":[]}`,
			`{"products":[{"quantity":"two"}]}`,
		} {
			_, ok := DecodeExtraction(raw)
			assert.False(t, ok, "raw = %q", raw)
		}
	})
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t\n"))
	assert.False(t, IsBlank("2 red shoes"))
}

func TestChatRequestPrompts(t *testing.T) {
	req := ChatRequest{Messages: []ChatMessage{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "first"},
		{Role: RoleUser, Content: "second"},
	}}

	assert.Equal(t, "sys", req.SystemPrompt())
	assert.Equal(t, "second", req.UserPrompt())
	assert.Empty(t, ChatRequest{}.SystemPrompt())
	assert.Empty(t, ChatRequest{}.UserPrompt())
}
