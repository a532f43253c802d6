package controller

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"facturio/internal/session"
)

// Renderer turns a finalized item table into a binary document payload.
type Renderer interface {
	Render(ctx context.Context, items []session.LineItem, docType session.DocumentType) ([]byte, error)
}

// FileSaver delivers a rendered payload to the user as a named file and
// returns the path it was written to.
type FileSaver interface {
	Save(filename string, data []byte) (string, error)
}

// ExportController owns the Idle -> Exporting -> {Idle, Error} leg of the
// session lifecycle. The item table is sent verbatim, partially edited
// fields included, and is never mutated by an export.
type ExportController struct {
	session  *session.Session
	renderer Renderer
	saver    FileSaver
	timeout  time.Duration
	logger   *zap.Logger
}

// NewExportController creates an export controller bound to one session.
func NewExportController(sess *session.Session, renderer Renderer, saver FileSaver, timeout time.Duration, logger *zap.Logger) *ExportController {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ExportController{
		session:  sess,
		renderer: renderer,
		saver:    saver,
		timeout:  timeout,
		logger:   logger,
	}
}

// Export runs one export attempt and returns the saved file path on
// success. Exporting an empty table or exporting while another request is
// in flight returns a lifecycle transition error.
func (ec *ExportController) Export(ctx context.Context) (string, error) {
	if err := ec.session.BeginExport(ctx); err != nil {
		return "", err
	}

	reqCtx, cancel := context.WithTimeout(ctx, ec.timeout)
	defer cancel()

	docType := ec.session.DocType()
	payload, err := ec.renderer.Render(reqCtx, ec.session.Items(), docType)
	if err != nil {
		ec.logger.Warn("Export attempt failed", zap.Error(err))
		return "", ec.session.FailExport(ctx, MsgExportError)
	}

	// Suggested filename is derived from the selected document type.
	path, err := ec.saver.Save(fmt.Sprintf("%s.pdf", docType), payload)
	if err != nil {
		ec.logger.Warn("Saving exported document failed", zap.Error(err))
		return "", ec.session.FailExport(ctx, MsgExportError)
	}

	ec.logger.Info("Document exported",
		zap.String("doc_type", docType.String()),
		zap.String("path", path))
	return path, ec.session.CompleteExport(ctx)
}
