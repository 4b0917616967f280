// Package machine provides a small generic state machine. Its main consumer
// is the file entry lifecycle: a scanned file moves Pending -> Ready ->
// Success and only a successful rename may be undone, so every status change
// is checked against a declared transition table instead of being assigned
// freely.
package machine

import "errors"

type State interface {
	~string
}

// Allowable declares which states a given from state may move to.
type Allowable[S State] struct {
	from S
	to   []S
}

// StateMachine checks requested transitions for one current state.
type StateMachine[S State] struct {
	fromState S
	toStates  []Allowable[S]
}

var (
	ErrInvalidTransition = errors.New("invalid state transition")
)

// TransitionBuilder helps in creating a from-to relationship for state transitions
type TransitionBuilder[S State] struct {
	transition Allowable[S]
}

func New[S State](currentState S, transitions ...Allowable[S]) *StateMachine[S] {
	return &StateMachine[S]{fromState: currentState, toStates: transitions}
}

// From initializes a transition from a specific state
func From[S State](from S) *TransitionBuilder[S] {
	return &TransitionBuilder[S]{transition: Allowable[S]{from: from}}
}

// To sets the possible destination states and returns the configured transition
func (tb *TransitionBuilder[S]) To(to ...S) Allowable[S] {
	tb.transition.to = to
	return tb.transition
}

// ToState reports whether the machine's current state may move to s. The
// machine does not advance; callers that accept the transition update their
// own state, the way a file entry records its new status.
func (m *StateMachine[S]) ToState(s S) error {
	for _, transition := range m.toStates {
		// only rules declared for the current state apply
		if transition.from != m.fromState {
			continue
		}

		for _, transitionToState := range transition.to {
			if transitionToState == s {
				return nil
			}
		}
	}

	return ErrInvalidTransition
}
