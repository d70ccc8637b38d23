package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONContent_MarkdownFence(t *testing.T) {
	raw := "Here is your game:\n```json\n{\"title\": \"Quest\"}\n```\nEnjoy!"
	assert.Equal(t, `{"title": "Quest"}`, ExtractJSONContent(raw))
}

func TestExtractJSONContent_PlainFence(t *testing.T) {
	raw := "```\n[{\"id\": 1}]\n```"
	assert.Equal(t, `[{"id": 1}]`, ExtractJSONContent(raw))
}

func TestExtractJSONContent_SurroundingProse(t *testing.T) {
	raw := `Sure! {"a": {"b": [1, 2, 3]}} Hope that helps.`
	assert.Equal(t, `{"a": {"b": [1, 2, 3]}}`, ExtractJSONContent(raw))
}

func TestExtractJSONContent_TruncatedObject(t *testing.T) {
	// Обрыв ответа на середине: закрывающие скобки восстанавливаются.
	raw := `{"options": [{"id": "option_1", "title": "Speed"`
	result := ExtractJSONContent(raw)
	require.NotEmpty(t, result)
	assert.True(t, isValidJSON(result))
}

func TestExtractJSONContent_BracesInsideStrings(t *testing.T) {
	raw := `{"description": "use {curly} and [square] freely"}`
	assert.Equal(t, raw, ExtractJSONContent(raw))
}

func TestExtractJSONContent_NoJSON(t *testing.T) {
	assert.Empty(t, ExtractJSONContent("I cannot help with that."))
	assert.Empty(t, ExtractJSONContent(""))
}

func TestExtractJSONObject(t *testing.T) {
	obj, ok := ExtractJSONObject("```json\n{\"theme\": {\"name\": \"Space\"}}\n```")
	require.True(t, ok)
	theme, ok := obj["theme"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Space", theme["name"])
}

func TestExtractJSONObject_ArrayInput(t *testing.T) {
	// Массив верхнего уровня не является объектом.
	_, ok := ExtractJSONObject(`[1, 2, 3]`)
	assert.False(t, ok)
}

func TestExtractJSONArray(t *testing.T) {
	arr, ok := ExtractJSONArray(`Result: [{"title": "Step 1"}, {"title": "Step 2"}]`)
	require.True(t, ok)
	assert.Len(t, arr, 2)
}

func TestExtractJSONArray_ObjectInput(t *testing.T) {
	_, ok := ExtractJSONArray(`{"a": 1}`)
	assert.False(t, ok)
}
