package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_HappyPath(t *testing.T) {
	m := NewMachine(StateDraft)

	state, err := m.Transition(ActionPublish, nil)
	require.NoError(t, err)
	assert.Equal(t, StateRegistration, state)

	state, err = m.Transition(ActionStart, nil)
	require.NoError(t, err)
	assert.Equal(t, StateActive, state)

	state, err = m.Transition(ActionComplete, nil)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)

	state, err = m.Transition(ActionArchive, nil)
	require.NoError(t, err)
	assert.Equal(t, StateArchived, state)
}

func TestMachine_SelfTransitions(t *testing.T) {
	m := NewMachine(StateDraft)
	state, err := m.Transition(ActionEdit, nil)
	require.NoError(t, err)
	assert.Equal(t, StateDraft, state)

	m = NewMachine(StateActive)
	state, err = m.Transition(ActionAdvance, nil)
	require.NoError(t, err)
	assert.Equal(t, StateActive, state)
}

func TestMachine_CancelReturnsToDraft(t *testing.T) {
	m := NewMachine(StateRegistration)

	state, err := m.Transition(ActionCancel, nil)
	require.NoError(t, err)
	assert.Equal(t, StateDraft, state)
}

func TestMachine_IllegalActionLeavesStateUntouched(t *testing.T) {
	m := NewMachine(StateDraft)

	_, err := m.Transition(ActionStart, nil)
	require.Error(t, err)

	var terr *TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, StateDraft, terr.From)
	assert.Equal(t, ActionStart, terr.Action)
	assert.Equal(t, StateDraft, m.State())
}

func TestMachine_ArchivedIsTerminal(t *testing.T) {
	m := NewMachine(StateArchived)

	for _, action := range []string{ActionPublish, ActionEdit, ActionStart, ActionCancel, ActionAdvance, ActionComplete, ActionArchive} {
		_, err := m.Transition(action, nil)
		assert.Error(t, err, "action %s must fail from archived", action)
		assert.Equal(t, StateArchived, m.State())
	}
	assert.Equal(t, []string{ActionView}, m.AllowedActions())
}

func TestMachine_GuardBlocksTransition(t *testing.T) {
	m := NewMachine(StateRegistration)
	m.SetGuard(ActionStart, MinTeamsGuard(4))

	_, err := m.Transition(ActionStart, &GuardContext{TeamCount: 3})
	require.Error(t, err)

	var terr *TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, StateActive, terr.To)
	assert.Equal(t, StateRegistration, m.State())

	state, err := m.Transition(ActionStart, &GuardContext{TeamCount: 4})
	require.NoError(t, err)
	assert.Equal(t, StateActive, state)
}

func TestMachine_AllMatchesCompleteGuard(t *testing.T) {
	m := NewMachine(StateActive)
	m.SetGuard(ActionComplete, AllMatchesCompleteGuard)

	_, err := m.Transition(ActionComplete, &GuardContext{PendingMatches: 2})
	require.Error(t, err)
	assert.Equal(t, StateActive, m.State())

	state, err := m.Transition(ActionComplete, &GuardContext{PendingMatches: 0})
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)
}

func TestMachine_CanPerformPerState(t *testing.T) {
	assert.True(t, NewMachine(StateRegistration).CanPerform(ActionRegisterTeam))
	assert.False(t, NewMachine(StateActive).CanPerform(ActionRegisterTeam))
	assert.True(t, NewMachine(StateActive).CanPerform(ActionRecordResult))
	assert.False(t, NewMachine(StateCompleted).CanPerform(ActionRecordResult))
	assert.True(t, NewMachine(StateDraft).CanPerform(ActionDelete))
}

func TestFromString_UnknownFallsBackToDraft(t *testing.T) {
	assert.Equal(t, StateActive, FromString("active").State())
	assert.Equal(t, StateDraft, FromString("bogus").State())
	assert.Equal(t, StateDraft, FromString("").State())
}
