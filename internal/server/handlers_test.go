package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"facturio/internal/session"
)

type stubExtractor struct {
	items []session.LineItem
	err   error
}

func (s *stubExtractor) ParseItems(ctx context.Context, prompt string) ([]session.LineItem, error) {
	return s.items, s.err
}

type stubRenderer struct {
	payload []byte
	err     error
	docType string
}

func (s *stubRenderer) Render(items []session.LineItem, docType string) ([]byte, error) {
	s.docType = docType
	return s.payload, s.err
}

func newTestServer(extractor ItemExtractor, renderer DocumentRenderer) *Server {
	logger := zap.NewNop()
	return New(DefaultConfig(), NewHandlers(extractor, renderer, logger), logger)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestParseHandler_RequiresPrompt(t *testing.T) {
	srv := newTestServer(&stubExtractor{}, &stubRenderer{})

	w := doJSON(t, srv, http.MethodPost, "/api/parse", `{"prompt":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Prompt is required")
}

func TestParseHandler_ReturnsItems(t *testing.T) {
	qty := 2.0
	price := 10.0
	srv := newTestServer(&stubExtractor{items: []session.LineItem{
		{Name: "Widget A", Quantity: &qty, UnitPrice: &price},
	}}, &stubRenderer{})

	w := doJSON(t, srv, http.MethodPost, "/api/parse", `{"prompt":"2x Widget A at $10"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []session.LineItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Widget A", resp.Items[0].Name)
}

func TestParseHandler_EmptyResultStillHasItemsKey(t *testing.T) {
	srv := newTestServer(&stubExtractor{items: nil}, &stubRenderer{})

	w := doJSON(t, srv, http.MethodPost, "/api/parse", `{"prompt":"nothing"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp, "items")
	assert.JSONEq(t, `[]`, string(resp["items"]))
}

func TestParseHandler_ExtractionFailure(t *testing.T) {
	srv := newTestServer(&stubExtractor{err: errors.New("model unavailable")}, &stubRenderer{})

	w := doJSON(t, srv, http.MethodPost, "/api/parse", `{"prompt":"anything"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "AI parsing failed")
}

func TestGeneratePDFHandler_RequiresItems(t *testing.T) {
	srv := newTestServer(&stubExtractor{}, &stubRenderer{})

	w := doJSON(t, srv, http.MethodPost, "/api/generate-pdf", `{"items":[],"docType":"Invoice"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Items are required")
}

func TestGeneratePDFHandler_ReturnsAttachment(t *testing.T) {
	renderer := &stubRenderer{payload: []byte("%PDF-1.4 fake")}
	srv := newTestServer(&stubExtractor{}, renderer)

	w := doJSON(t, srv, http.MethodPost, "/api/generate-pdf",
		`{"items":[{"name":"Widget A","quantity":2,"unit_price":10}],"docType":"PurchaseOrder"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="purchaseorder.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, []byte("%PDF-1.4 fake"), w.Body.Bytes())
	assert.Equal(t, "PurchaseOrder", renderer.docType)
}

func TestGeneratePDFHandler_DefaultDocType(t *testing.T) {
	renderer := &stubRenderer{payload: []byte("%PDF-1.4")}
	srv := newTestServer(&stubExtractor{}, renderer)

	w := doJSON(t, srv, http.MethodPost, "/api/generate-pdf", `{"items":[{"name":"Widget A"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Invoice", renderer.docType)
}

func TestGeneratePDFHandler_RenderFailure(t *testing.T) {
	srv := newTestServer(&stubExtractor{}, &stubRenderer{err: errors.New("layout error")})

	w := doJSON(t, srv, http.MethodPost, "/api/generate-pdf", `{"items":[{"name":"Widget A"}]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "PDF generation failed")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubExtractor{}, &stubRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		docType  string
		expected string
	}{
		{"Invoice", "invoice.pdf"},
		{"PurchaseOrder", "purchaseorder.pdf"},
		{"Delivery Note", "delivery_note.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.docType, func(t *testing.T) {
			assert.Equal(t, tt.expected, downloadName(tt.docType))
		})
	}
}
