package lifecycle

// Trigger represents an event that can cause a session state transition.
type Trigger string

const (
	TriggerBeginParse      Trigger = "BEGIN_PARSE"
	TriggerParseSucceeded  Trigger = "PARSE_SUCCEEDED"
	TriggerParseFailed     Trigger = "PARSE_FAILED"
	TriggerBeginExport     Trigger = "BEGIN_EXPORT"
	TriggerExportSucceeded Trigger = "EXPORT_SUCCEEDED"
	TriggerExportFailed    Trigger = "EXPORT_FAILED"
	TriggerDismissError    Trigger = "DISMISS_ERROR"
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	return string(t)
}
