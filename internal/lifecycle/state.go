package lifecycle

// State represents a phase of the document-authoring session.
type State string

const (
	StateIdle      State = "IDLE"
	StateParsing   State = "PARSING"
	StateExporting State = "EXPORTING"
	StateError     State = "ERROR"
)

var validStates = map[State]bool{
	StateIdle:      true,
	StateParsing:   true,
	StateExporting: true,
	StateError:     true,
}

// busyStates are the states in which an external request is in flight.
// No new trigger may start an operation while the session is busy.
var busyStates = map[State]bool{
	StateParsing:   true,
	StateExporting: true,
}

// IsBusy returns true while a request is in flight.
func (s State) IsBusy() bool {
	return busyStates[s]
}

// IsValid returns true if the state is a known session state.
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}
