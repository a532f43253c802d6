package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"facturio/internal/session"
)

// RenderClient calls the document-rendering service.
type RenderClient struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewRenderClient creates a rendering service client with a bounded timeout.
func NewRenderClient(endpoint string, timeout time.Duration, logger *zap.Logger) *RenderClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RenderClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type renderRequest struct {
	Items   []session.LineItem `json:"items"`
	DocType string             `json:"docType"`
}

// Render sends the item table and document type to the rendering service
// and returns the binary PDF payload.
func (c *RenderClient) Render(ctx context.Context, items []session.LineItem, docType session.DocumentType) ([]byte, error) {
	body, err := json.Marshal(renderRequest{Items: items, DocType: docType.String()})
	if err != nil {
		return nil, fmt.Errorf("marshaling render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling rendering service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading render response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Rendering service returned non-success status",
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("rendering service error (status %d)", resp.StatusCode)
	}

	c.logger.Info("Document rendered",
		zap.String("doc_type", docType.String()),
		zap.Int("bytes", len(payload)))
	return payload, nil
}
