package lifecycle

import (
	"context"
	"fmt"
)

// GuardFunc evaluates whether a transition should be allowed.
type GuardFunc func(ctx context.Context) bool

// transition is a target state with an optional guard.
type transition struct {
	toState State
	guard   GuardFunc
}

// Builder accumulates the transition table for a session machine.
type Builder struct {
	transitions map[State]map[Trigger][]transition
}

// NewBuilder creates an empty state machine builder.
func NewBuilder() *Builder {
	return &Builder{
		transitions: make(map[State]map[Trigger][]transition),
	}
}

// Permit allows trigger to move the machine from state to toState.
func (b *Builder) Permit(from State, trigger Trigger, toState State) *Builder {
	return b.PermitIf(from, trigger, toState, nil)
}

// PermitIf allows the transition only when guard passes at fire time.
func (b *Builder) PermitIf(from State, trigger Trigger, toState State, guard GuardFunc) *Builder {
	if !from.IsValid() {
		panic(fmt.Sprintf("lifecycle: invalid source state: %s", from))
	}
	if !toState.IsValid() {
		panic(fmt.Sprintf("lifecycle: invalid target state: %s", toState))
	}

	if b.transitions[from] == nil {
		b.transitions[from] = make(map[Trigger][]transition)
	}
	b.transitions[from][trigger] = append(b.transitions[from][trigger], transition{
		toState: toState,
		guard:   guard,
	})
	return b
}

// Build creates a machine starting in initialState. The transition table is
// copied so later Builder mutations do not leak into built machines.
func (b *Builder) Build(initialState State) *Machine {
	if !initialState.IsValid() {
		panic(fmt.Sprintf("lifecycle: invalid initial state: %s", initialState))
	}

	table := make(map[State]map[Trigger][]transition, len(b.transitions))
	for state, byTrigger := range b.transitions {
		copied := make(map[Trigger][]transition, len(byTrigger))
		for trigger, ts := range byTrigger {
			copied[trigger] = append([]transition{}, ts...)
		}
		table[state] = copied
	}

	return &Machine{
		currentState: initialState,
		transitions:  table,
	}
}

// Machine tracks the current session state and validates transitions.
// It is owned by a single goroutine, like the session it belongs to.
type Machine struct {
	currentState State
	transitions  map[State]map[Trigger][]transition
}

// State returns the current state.
func (m *Machine) State() State {
	return m.currentState
}

// CanFire returns true if the trigger has at least one transition configured
// in the current state. Guards are not evaluated here.
func (m *Machine) CanFire(trigger Trigger) bool {
	return len(m.transitions[m.currentState][trigger]) > 0
}

// Fire executes the trigger, moving to the first target whose guard passes.
func (m *Machine) Fire(ctx context.Context, trigger Trigger) error {
	ts := m.transitions[m.currentState][trigger]
	if len(ts) == 0 {
		return fmt.Errorf("%w: cannot fire %s from %s", ErrInvalidTransition, trigger, m.currentState)
	}

	for _, t := range ts {
		if t.guard == nil || t.guard(ctx) {
			m.currentState = t.toState
			return nil
		}
	}

	return fmt.Errorf("%w: trigger %s from %s", ErrGuardFailed, trigger, m.currentState)
}

// PermittedTriggers returns the triggers configured for the current state.
func (m *Machine) PermittedTriggers() []Trigger {
	byTrigger := m.transitions[m.currentState]
	triggers := make([]Trigger, 0, len(byTrigger))
	for trigger := range byTrigger {
		triggers = append(triggers, trigger)
	}
	return triggers
}
