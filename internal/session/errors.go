package session

import "errors"

// Contract-violation errors for session mutators. These indicate caller
// defects, not recoverable runtime conditions.
var (
	// ErrInvalidArgument is returned for a document type outside the
	// enumeration, an unknown field name, or an unparseable field value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is returned when an item index does not address an
	// existing row of the table.
	ErrOutOfRange = errors.New("index out of range")
)
