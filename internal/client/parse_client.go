// Package client provides HTTP clients for the two services the session
// depends on: the natural-language parsing service and the document
// rendering service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"facturio/internal/session"
)

// ErrNoItems is returned when the parsing service responds without an
// items list at all. A present-but-empty list is not this error.
var ErrNoItems = errors.New("parse response contains no items list")

// ParseClient calls the natural-language parsing service.
type ParseClient struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewParseClient creates a parsing service client. A zero timeout falls
// back to 60 seconds; requests are never unbounded.
func NewParseClient(endpoint string, timeout time.Duration, logger *zap.Logger) *ParseClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ParseClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type parseRequest struct {
	Prompt string `json:"prompt"`
}

// parseResponse distinguishes a missing items key (Items == nil) from an
// empty items array, which the service contract treats differently.
type parseResponse struct {
	Items *[]session.LineItem `json:"items"`
}

// ParseItems sends the prompt to the parsing service and returns the
// structured line items in response order.
func (c *ParseClient) ParseItems(ctx context.Context, prompt string) ([]session.LineItem, error) {
	body, err := json.Marshal(parseRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("marshaling parse request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating parse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling parsing service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading parse response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Parsing service returned non-success status",
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("parsing service error (status %d): %s", resp.StatusCode, respBody)
	}

	var parsed parseResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decoding parse response: %w", err)
	}
	if parsed.Items == nil {
		return nil, ErrNoItems
	}

	c.logger.Info("Prompt parsed into line items", zap.Int("item_count", len(*parsed.Items)))
	return *parsed.Items, nil
}
