// Package ai turns free-text descriptions of billable work into structured
// line items using a chat-completion model.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"facturio/internal/session"
)

// Extractor extracts invoice line items from a natural-language prompt.
type Extractor struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// NewExtractor creates a new line item extractor.
func NewExtractor(apiKey, model string, temperature float32, logger *zap.Logger) *Extractor {
	return &Extractor{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		logger:      logger,
	}
}

// itemsEnvelope is the JSON object shape the model is instructed to return.
type itemsEnvelope struct {
	Items []session.LineItem `json:"items"`
}

// ParseItems extracts line items from the prompt text. The returned slice
// is never nil; a prompt with no recognizable items yields an empty list.
func (e *Extractor) ParseItems(ctx context.Context, prompt string) ([]session.LineItem, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You extract billing line items from free text. Respond with JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildExtractionPrompt(prompt),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		e.logger.Error("Failed to call chat completion API", zap.Error(err))
		return nil, fmt.Errorf("failed to extract line items: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	content := resp.Choices[0].Message.Content
	items, err := decodeItems(content)
	if err != nil {
		e.logger.Error("Failed to parse extraction result",
			zap.Error(err),
			zap.String("content", content))
		return nil, fmt.Errorf("failed to parse extraction result: %w", err)
	}

	e.logger.Info("Line items extracted", zap.Int("item_count", len(items)))
	return items, nil
}

// arrayPattern pulls a JSON array out of loose model output when the
// response is not a clean envelope.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// decodeItems accepts either {"items":[...]} or a bare array, possibly
// surrounded by prose or markdown fences.
func decodeItems(content string) ([]session.LineItem, error) {
	content = strings.TrimSpace(content)

	var envelope itemsEnvelope
	if err := json.Unmarshal([]byte(content), &envelope); err == nil && envelope.Items != nil {
		return envelope.Items, nil
	}

	var items []session.LineItem
	if err := json.Unmarshal([]byte(content), &items); err == nil {
		return items, nil
	}

	if match := arrayPattern.FindString(content); match != "" {
		if err := json.Unmarshal([]byte(match), &items); err == nil {
			return items, nil
		}
	}

	return nil, fmt.Errorf("no JSON item list in model output")
}

// buildExtractionPrompt builds the extraction instruction for one prompt.
func buildExtractionPrompt(text string) string {
	return fmt.Sprintf(`Extract invoice items from the following text and return a JSON object
with an "items" array. Each item has: reference, name, quantity, unit_price.

Text: %s

Important: if a reference code appears in the text (like 'Ref#123' or
'REF-456'), use that exact reference. If no reference is provided, leave
the reference field empty. Omit quantity or unit_price when the text does
not state them.

Return only valid JSON like:
{"items": [
  {"reference": "REF123", "name": "Product Name", "quantity": 2, "unit_price": 10.50},
  {"reference": "", "name": "Another Product", "quantity": 1, "unit_price": 25.00}
]}`, text)
}
