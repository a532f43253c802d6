package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"facturio/internal/session"
)

// ItemExtractor turns a free-text prompt into structured line items.
type ItemExtractor interface {
	ParseItems(ctx context.Context, prompt string) ([]session.LineItem, error)
}

// DocumentRenderer turns a line item table into a binary document.
type DocumentRenderer interface {
	Render(items []session.LineItem, docType string) ([]byte, error)
}

// Handlers holds the request handlers for the service endpoints.
type Handlers struct {
	extractor ItemExtractor
	renderer  DocumentRenderer
	logger    *zap.Logger
}

// NewHandlers creates the endpoint handlers.
func NewHandlers(extractor ItemExtractor, renderer DocumentRenderer, logger *zap.Logger) *Handlers {
	return &Handlers{
		extractor: extractor,
		renderer:  renderer,
		logger:    logger,
	}
}

type parseRequest struct {
	Prompt string `json:"prompt"`
}

// Parse handles POST /api/parse.
func (h *Handlers) Parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	items, err := h.extractor.ParseItems(c.Request.Context(), req.Prompt)
	if err != nil {
		h.logger.Error("Prompt extraction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("AI parsing failed: %v", err)})
		return
	}
	if items == nil {
		items = []session.LineItem{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

type generatePDFRequest struct {
	Items   []session.LineItem `json:"items"`
	DocType string             `json:"docType"`
}

// GeneratePDF handles POST /api/generate-pdf.
func (h *Handlers) GeneratePDF(c *gin.Context) {
	var req generatePDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required"})
		return
	}

	docType := req.DocType
	if docType == "" {
		docType = session.DefaultDocumentType().String()
	}

	payload, err := h.renderer.Render(req.Items, docType)
	if err != nil {
		h.logger.Error("Document rendering failed",
			zap.String("doc_type", docType),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("PDF generation failed: %v", err)})
		return
	}

	filename := downloadName(docType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}

// Health handles GET /health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "facturio",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// downloadName lowercases the document type and replaces spaces, the
// naming the web client historically received from this endpoint.
func downloadName(docType string) string {
	name := strings.ReplaceAll(strings.ToLower(docType), " ", "_")
	return name + ".pdf"
}
