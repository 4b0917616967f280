package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStateMachine(t *testing.T) {
	type EntryState string

	const (
		StatePending EntryState = "Pending"
		StateReady   EntryState = "Ready"
		StateSuccess EntryState = "Success"
		StateError   EntryState = "Error"
		StateUndone  EntryState = "Undone"
	)

	t.Run("valid transition", func(t *testing.T) {
		machine := New[EntryState](StatePending,
			From(StatePending).To(StateReady),
			From(StateReady).To(StateSuccess, StateError),
		)

		if len(machine.toStates) != 2 {
			t.Errorf("expected %d toStates, got %d", 2, len(machine.toStates))
		}

		err := machine.ToState(StateReady)
		assert.Equal(t, machine.fromState, StatePending)
		assert.Nil(t, err)
	})

	t.Run("invalid transition", func(t *testing.T) {
		machine := New[EntryState](StateSuccess,
			From(StatePending).To(StateReady),
			From(StateReady).To(StateSuccess, StateError),
			From(StateSuccess).To(StateUndone),
		)

		err := machine.ToState(StateReady)
		assert.Equal(t, machine.fromState, StateSuccess)
		assert.Equal(t, err, ErrInvalidTransition)
	})

	t.Run("transition to one of several states", func(t *testing.T) {
		machine := New[EntryState](StateReady,
			From(StateReady).To(StateSuccess, StateError),
		)

		assert.Nil(t, machine.ToState(StateError))
		assert.Nil(t, machine.ToState(StateSuccess))
	})
}
