// Package session holds the in-memory model of one document-authoring
// interaction: the prompt, the selected document type, the editable line
// item table and the lifecycle status. The session owns all mutation and
// lives only for the duration of the process; there is no persistence.
//
// A Session is owned by a single goroutine (the event loop driving it).
// Mutual exclusion between parse and export is enforced by the lifecycle
// machine, not by locks.
package session

import (
	"context"
	"fmt"
	"strconv"

	"facturio/internal/lifecycle"
)

// Session is the authoritative state of one authoring session.
type Session struct {
	prompt  string
	docType DocumentType
	items   []LineItem

	machine *lifecycle.Machine
	errKind ErrorKind
	errMsg  string
}

// New creates an idle session with the default document type and an empty table.
func New() *Session {
	s := &Session{
		docType: DefaultDocumentType(),
	}

	// BEGIN_EXPORT is guarded: exporting an empty table is never permitted.
	hasItems := func(ctx context.Context) bool { return len(s.items) > 0 }

	s.machine = lifecycle.NewBuilder().
		Permit(lifecycle.StateIdle, lifecycle.TriggerBeginParse, lifecycle.StateParsing).
		PermitIf(lifecycle.StateIdle, lifecycle.TriggerBeginExport, lifecycle.StateExporting, hasItems).
		Permit(lifecycle.StateError, lifecycle.TriggerBeginParse, lifecycle.StateParsing).
		PermitIf(lifecycle.StateError, lifecycle.TriggerBeginExport, lifecycle.StateExporting, hasItems).
		Permit(lifecycle.StateError, lifecycle.TriggerDismissError, lifecycle.StateIdle).
		Permit(lifecycle.StateParsing, lifecycle.TriggerParseSucceeded, lifecycle.StateIdle).
		Permit(lifecycle.StateParsing, lifecycle.TriggerParseFailed, lifecycle.StateError).
		Permit(lifecycle.StateExporting, lifecycle.TriggerExportSucceeded, lifecycle.StateIdle).
		Permit(lifecycle.StateExporting, lifecycle.TriggerExportFailed, lifecycle.StateError).
		Build(lifecycle.StateIdle)

	return s
}

// SetPrompt replaces the prompt text unconditionally.
func (s *Session) SetPrompt(text string) {
	s.prompt = text
}

// Prompt returns the current prompt text.
func (s *Session) Prompt() string {
	return s.prompt
}

// SetDocType replaces the active document type.
func (s *Session) SetDocType(t DocumentType) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: unknown document type %q", ErrInvalidArgument, t)
	}
	s.docType = t
	return nil
}

// DocType returns the active document type.
func (s *Session) DocType() DocumentType {
	return s.docType
}

// SetItems replaces the entire item table, preserving the given order.
func (s *Session) SetItems(items []LineItem) {
	s.items = append([]LineItem{}, items...)
}

// Items returns a copy of the item table in display order.
func (s *Session) Items() []LineItem {
	return append([]LineItem{}, s.items...)
}

// UpdateItemField mutates exactly one field of the item at index, leaving
// every other item and field untouched. Numeric fields accept a decimal
// string; an empty value unsets them.
func (s *Session) UpdateItemField(index int, field Field, value string) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: item index %d with %d items", ErrOutOfRange, index, len(s.items))
	}
	if !field.IsValid() {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidArgument, field)
	}

	item := &s.items[index]
	switch field {
	case FieldReference:
		item.Reference = value
	case FieldName:
		item.Name = value
	case FieldQuantity, FieldUnitPrice:
		var parsed *float64
		if value != "" {
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%w: %s value %q is not numeric", ErrInvalidArgument, field, value)
			}
			parsed = &n
		}
		if field == FieldQuantity {
			item.Quantity = parsed
		} else {
			item.UnitPrice = parsed
		}
	}
	return nil
}

// Status returns the current tagged status.
func (s *Session) Status() Status {
	return Status{
		State:     s.machine.State(),
		ErrorKind: s.errKind,
		Message:   s.errMsg,
	}
}

// BeginParse enters the Parsing state. Any previous error is cleared and
// the item table is discarded up front, so a failed parse never shows
// stale rows next to a fresh error.
func (s *Session) BeginParse(ctx context.Context) error {
	if err := s.machine.Fire(ctx, lifecycle.TriggerBeginParse); err != nil {
		return err
	}
	s.clearError()
	s.items = nil
	return nil
}

// CompleteParse leaves the Parsing state with a new item table. An empty
// but present list is a legitimate result.
func (s *Session) CompleteParse(ctx context.Context, items []LineItem) error {
	if err := s.machine.Fire(ctx, lifecycle.TriggerParseSucceeded); err != nil {
		return err
	}
	s.SetItems(items)
	return nil
}

// FailParse leaves the Parsing state with a user-visible error. The table
// stays empty, as BeginParse already cleared it.
func (s *Session) FailParse(ctx context.Context, kind ErrorKind, message string) error {
	if err := s.machine.Fire(ctx, lifecycle.TriggerParseFailed); err != nil {
		return err
	}
	s.errKind = kind
	s.errMsg = message
	return nil
}

// BeginExport enters the Exporting state. The item table is read, never
// mutated, by the export path.
func (s *Session) BeginExport(ctx context.Context) error {
	if err := s.machine.Fire(ctx, lifecycle.TriggerBeginExport); err != nil {
		return err
	}
	s.clearError()
	return nil
}

// CompleteExport returns to Idle after a successful export.
func (s *Session) CompleteExport(ctx context.Context) error {
	return s.machine.Fire(ctx, lifecycle.TriggerExportSucceeded)
}

// FailExport leaves the Exporting state with a user-visible error, keeping
// the item table exactly as it was.
func (s *Session) FailExport(ctx context.Context, message string) error {
	if err := s.machine.Fire(ctx, lifecycle.TriggerExportFailed); err != nil {
		return err
	}
	s.errKind = ErrorKindExport
	s.errMsg = message
	return nil
}

// DismissError acknowledges a displayed error and returns to Idle.
func (s *Session) DismissError(ctx context.Context) error {
	if err := s.machine.Fire(ctx, lifecycle.TriggerDismissError); err != nil {
		return err
	}
	s.clearError()
	return nil
}

func (s *Session) clearError() {
	s.errKind = ErrorKindNone
	s.errMsg = ""
}
