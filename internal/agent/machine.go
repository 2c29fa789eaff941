package agent

import (
	"fmt"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
)

// State is the scheduler's view of the target process.
type State string

const (
	StateWatching State = "watching"
	StateCrashed  State = "crashed"
)

// Event drives a state transition.
type Event string

const (
	EventTickFound       Event = "tick_found"
	EventTickAbsent      Event = "tick_absent"
	EventCooldownElapsed Event = "cooldown_elapsed"
)

var transitions = map[State]map[Event]State{
	StateWatching: {
		EventTickFound:  StateWatching,
		EventTickAbsent: StateCrashed,
	},
	StateCrashed: {
		EventCooldownElapsed: StateWatching,
	},
}

// Machine tracks the Watching/Crashed protocol. It starts in Watching; the
// first poll decides whether that was correct.
type Machine struct {
	state State
}

// NewMachine creates a machine in the Watching state.
func NewMachine() *Machine {
	return &Machine{state: StateWatching}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Fire applies ev and returns the new state. An event that is not valid in
// the current state leaves the machine unchanged.
func (m *Machine) Fire(ev Event) (State, error) {
	next, ok := transitions[m.state][ev]
	if !ok {
		return m.state, core.ErrState(core.CodeInvalidTransition,
			fmt.Sprintf("event %s not allowed in state %s", ev, m.state))
	}
	m.state = next
	return next, nil
}
