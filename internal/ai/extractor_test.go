package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeItems_Envelope(t *testing.T) {
	items, err := decodeItems(`{"items":[{"reference":"REF123","name":"Product","quantity":2,"unit_price":10.5}]}`)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "REF123", items[0].Reference)
	assert.Equal(t, "Product", items[0].Name)
	require.NotNil(t, items[0].Quantity)
	assert.Equal(t, 2.0, *items[0].Quantity)
	require.NotNil(t, items[0].UnitPrice)
	assert.Equal(t, 10.5, *items[0].UnitPrice)
}

func TestDecodeItems_BareArray(t *testing.T) {
	items, err := decodeItems(`[{"name":"A"},{"name":"B"}]`)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
}

func TestDecodeItems_ArrayEmbeddedInProse(t *testing.T) {
	content := "Here are the extracted items:\n```json\n[{\"name\":\"Widget\",\"quantity\":1}]\n```\nLet me know if you need anything else."
	items, err := decodeItems(content)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].Name)
}

func TestDecodeItems_OmittedNumericFieldsStayUnset(t *testing.T) {
	items, err := decodeItems(`{"items":[{"reference":"","name":"Consulting"}]}`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Quantity)
	assert.Nil(t, items[0].UnitPrice)
}

func TestDecodeItems_EmptyList(t *testing.T) {
	items, err := decodeItems(`{"items":[]}`)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestDecodeItems_NoItems(t *testing.T) {
	for _, content := range []string{"", "Sorry, I cannot help with that.", `{"result":"ok"}`} {
		_, err := decodeItems(content)
		assert.Error(t, err, "content %q should not decode", content)
	}
}

func TestBuildExtractionPrompt_IncludesText(t *testing.T) {
	prompt := buildExtractionPrompt("2x Widget A at $10")
	assert.Contains(t, prompt, "2x Widget A at $10")
	assert.Contains(t, prompt, "unit_price")
}
