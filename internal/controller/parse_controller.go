// Package controller drives the two phases of the authoring lifecycle that
// depend on external services: turning the prompt into a line item table
// (parse) and turning the table into a downloaded file (export). Transport
// and service-contract failures are absorbed here and surfaced as a short
// session error message; they are never propagated as Go errors.
package controller

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"facturio/internal/client"
	"facturio/internal/session"
)

// User-visible error messages. Failures carry no structured detail to the
// user beyond these.
const (
	MsgParseError  = "Error parsing prompt."
	MsgNoItems     = "No items found."
	MsgExportError = "Error generating PDF."
)

// ItemParser converts a free-text prompt into structured line items.
type ItemParser interface {
	ParseItems(ctx context.Context, prompt string) ([]session.LineItem, error)
}

// ParseController owns the Idle -> Parsing -> {Idle, Error} leg of the
// session lifecycle. There is no retry: a failed parse waits for the user
// to trigger a new one.
type ParseController struct {
	session *session.Session
	parser  ItemParser
	timeout time.Duration
	logger  *zap.Logger
}

// NewParseController creates a parse controller bound to one session.
func NewParseController(sess *session.Session, parser ItemParser, timeout time.Duration, logger *zap.Logger) *ParseController {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ParseController{
		session: sess,
		parser:  parser,
		timeout: timeout,
		logger:  logger,
	}
}

// Parse runs one parse attempt. An empty prompt is a no-op: no request is
// sent and no state changes. Triggering a parse while a request is already
// in flight returns a lifecycle transition error.
func (pc *ParseController) Parse(ctx context.Context) error {
	prompt := pc.session.Prompt()
	if prompt == "" {
		return nil
	}

	// Entering Parsing clears the previous error and the current table.
	if err := pc.session.BeginParse(ctx); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(ctx, pc.timeout)
	defer cancel()

	items, err := pc.parser.ParseItems(reqCtx, prompt)
	if err != nil {
		kind, msg := session.ErrorKindParse, MsgParseError
		if errors.Is(err, client.ErrNoItems) {
			kind, msg = session.ErrorKindNoItems, MsgNoItems
		}
		pc.logger.Warn("Parse attempt failed", zap.Error(err))
		return pc.session.FailParse(ctx, kind, msg)
	}

	pc.logger.Info("Parse attempt succeeded", zap.Int("item_count", len(items)))
	return pc.session.CompleteParse(ctx, items)
}
