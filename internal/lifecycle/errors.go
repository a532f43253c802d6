package lifecycle

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger is not permitted in the current state.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidState is returned when a state is not a known session state.
	ErrInvalidState = errors.New("invalid state")

	// ErrGuardFailed is returned when a transition's guard condition rejects the trigger.
	ErrGuardFailed = errors.New("guard condition failed")
)
