package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
)

func TestMachine_Protocol(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateWatching, m.State())

	steps := []struct {
		event Event
		want  State
	}{
		{EventTickFound, StateWatching},
		{EventTickFound, StateWatching},
		{EventTickAbsent, StateCrashed},
		{EventCooldownElapsed, StateWatching},
		{EventTickAbsent, StateCrashed},
		{EventCooldownElapsed, StateWatching},
	}
	for _, s := range steps {
		got, err := m.Fire(s.event)
		require.NoError(t, err, "event %s", s.event)
		assert.Equal(t, s.want, got)
	}
}

func TestMachine_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup []Event
		event Event
		state State
	}{
		{"cooldown while watching", nil, EventCooldownElapsed, StateWatching},
		{"found while crashed", []Event{EventTickAbsent}, EventTickFound, StateCrashed},
		{"absent while crashed", []Event{EventTickAbsent}, EventTickAbsent, StateCrashed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			for _, ev := range tt.setup {
				_, err := m.Fire(ev)
				require.NoError(t, err)
			}

			got, err := m.Fire(tt.event)
			require.Error(t, err)
			assert.ErrorIs(t, err, &core.DomainError{Category: core.ErrCatState, Code: core.CodeInvalidTransition})
			assert.Equal(t, tt.state, got)
			assert.Equal(t, tt.state, m.State(), "state unchanged")
		})
	}
}
