// Package lifecycle holds the tournament state machine: which lifecycle
// transitions and high-level actions are legal from each state.
package lifecycle

import "fmt"

type State string

const (
	StateDraft        State = "draft"
	StateRegistration State = "registration"
	StateActive       State = "active"
	StateCompleted    State = "completed"
	StateArchived     State = "archived"
)

// Lifecycle actions (raw transitions).
const (
	ActionPublish  = "publish"
	ActionEdit     = "edit"
	ActionStart    = "start"
	ActionCancel   = "cancel"
	ActionAdvance  = "advance"
	ActionComplete = "complete"
	ActionArchive  = "archive"
)

// High-level actions gated per state, distinct from raw transitions.
const (
	ActionDelete         = "delete"
	ActionRegisterTeam   = "register_team"
	ActionUnregisterTeam = "unregister_team"
	ActionRecordResult   = "record_result"
	ActionAbandonMatch   = "abandon_match"
	ActionView           = "view"
)

// TransitionError reports an action that is not legal from the current
// state, or a transition whose guard refused.
type TransitionError struct {
	From   State
	To     State
	Action string
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

// GuardContext carries the tournament facts guards evaluate.
type GuardContext struct {
	TeamCount      int
	PendingMatches int
}

type Guard func(ctx GuardContext) bool

// MinTeamsGuard passes once at least min teams are registered.
func MinTeamsGuard(min int) Guard {
	return func(ctx GuardContext) bool {
		return ctx.TeamCount >= min
	}
}

// AllMatchesCompleteGuard passes when no match in the current round is
// still pending.
func AllMatchesCompleteGuard(ctx GuardContext) bool {
	return ctx.PendingMatches == 0
}

type Transition struct {
	From   State
	To     State
	Action string
	Guard  Guard
}

var transitions = []Transition{
	{From: StateDraft, To: StateRegistration, Action: ActionPublish},
	{From: StateDraft, To: StateDraft, Action: ActionEdit},
	{From: StateRegistration, To: StateActive, Action: ActionStart},
	{From: StateRegistration, To: StateDraft, Action: ActionCancel},
	{From: StateActive, To: StateActive, Action: ActionAdvance},
	{From: StateActive, To: StateCompleted, Action: ActionComplete},
	{From: StateCompleted, To: StateArchived, Action: ActionArchive},
}

var allowedActions = map[State][]string{
	StateDraft:        {ActionEdit, ActionPublish, ActionDelete},
	StateRegistration: {ActionRegisterTeam, ActionUnregisterTeam, ActionStart, ActionCancel},
	StateActive:       {ActionRecordResult, ActionAbandonMatch, ActionAdvance},
	StateCompleted:    {ActionView, ActionArchive},
	StateArchived:     {ActionView},
}

type historyEntry struct {
	from   State
	action string
	to     State
}

// Machine tracks a single tournament's lifecycle state. It applies
// transitions atomically: on error the state is untouched.
type Machine struct {
	state   State
	guards  map[string]Guard
	history []historyEntry
}

func NewMachine(initial State) *Machine {
	return &Machine{state: initial, guards: make(map[string]Guard)}
}

// FromString restores a machine from a persisted status value. Unknown
// values fall back to draft.
func FromString(s string) *Machine {
	switch State(s) {
	case StateDraft, StateRegistration, StateActive, StateCompleted, StateArchived:
		return NewMachine(State(s))
	default:
		return NewMachine(StateDraft)
	}
}

func (m *Machine) State() State {
	return m.state
}

// SetGuard attaches a guard predicate to an action for this machine
// instance.
func (m *Machine) SetGuard(action string, guard Guard) {
	m.guards[action] = guard
}

// CanTransition reports whether the action matches a transition table row
// for the current state. Guards are not consulted.
func (m *Machine) CanTransition(action string) bool {
	for _, t := range transitions {
		if t.From == m.state && t.Action == action {
			return true
		}
	}
	return false
}

// CanPerform reports whether the high-level action is allowed in the
// current state.
func (m *Machine) CanPerform(action string) bool {
	for _, a := range allowedActions[m.state] {
		if a == action {
			return true
		}
	}
	return false
}

// AllowedActions lists the high-level actions legal in the current state.
func (m *Machine) AllowedActions() []string {
	actions := allowedActions[m.state]
	out := make([]string, len(actions))
	copy(out, actions)
	return out
}

// Transition applies the action. The guard registered for the action, if
// any, must pass; otherwise the transition fails and the state is left
// unchanged. A nil ctx skips guard evaluation.
func (m *Machine) Transition(action string, ctx *GuardContext) (State, error) {
	for _, t := range transitions {
		if t.From != m.state || t.Action != action {
			continue
		}
		if guard, ok := m.guards[action]; ok && ctx != nil {
			if !guard(*ctx) {
				return m.state, &TransitionError{
					From:   m.state,
					To:     t.To,
					Action: action,
					Reason: fmt.Sprintf("guard condition failed for action %q", action),
				}
			}
		}
		from := m.state
		m.state = t.To
		m.history = append(m.history, historyEntry{from: from, action: action, to: t.To})
		return m.state, nil
	}

	return m.state, &TransitionError{
		From:   m.state,
		Action: action,
		Reason: fmt.Sprintf("no valid transition for action %q from state %q", action, m.state),
	}
}
