package session

import "facturio/internal/lifecycle"

// ErrorKind classifies a user-visible session error.
type ErrorKind string

const (
	ErrorKindNone    ErrorKind = ""
	ErrorKindParse   ErrorKind = "parse"
	ErrorKindNoItems ErrorKind = "no_items"
	ErrorKindExport  ErrorKind = "export"
)

// Status is the tagged session status: the current lifecycle state plus,
// when the state is Error, the kind and human-readable message. Parse-busy
// and export-busy are distinct states, so mutual exclusion between the two
// operations is visible in the status itself.
type Status struct {
	State     lifecycle.State
	ErrorKind ErrorKind
	Message   string
}

// IsBusy returns true while a parse or export request is in flight.
func (s Status) IsBusy() bool {
	return s.State.IsBusy()
}

// IsError returns true if the session is showing a user-visible error.
func (s Status) IsError() bool {
	return s.State == lifecycle.StateError
}
