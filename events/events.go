// Package events defines the outbound event taxonomy and the hub that
// delivers it to live subscribers. Events are emitted synchronously after
// the corresponding mutation succeeds; delivery failures never roll a
// mutation back.
package events

import (
	"encoding/json"
	"time"
)

type Type string

const (
	// Tournament lifecycle.
	TournamentCreated   Type = "tournament.created"
	TournamentPublished Type = "tournament.published"
	TournamentStarted   Type = "tournament.started"
	TournamentCompleted Type = "tournament.completed"
	TournamentArchived  Type = "tournament.archived"

	StateChanged Type = "state.changed"

	TeamRegistered   Type = "team.registered"
	TeamUnregistered Type = "team.unregistered"

	MatchCreated   Type = "match.created"
	MatchResult    Type = "match.result"
	MatchAbandoned Type = "match.abandoned"

	RoundStarted     Type = "round.started"
	RoundCompleted   Type = "round.completed"
	KnockoutStarted  Type = "knockout.started"
	GroupsAssigned   Type = "groups.assigned"
	MatchesScheduled Type = "matches.scheduled"
)

type Event struct {
	Type         Type           `json:"type"`
	TournamentID string         `json:"tournament_id"`
	Timestamp    time.Time      `json:"timestamp"`
	Data         map[string]any `json:"data"`
}

func New(t Type, tournamentID string, data map[string]any) Event {
	if data == nil {
		data = map[string]any{}
	}
	return Event{
		Type:         t,
		TournamentID: tournamentID,
		Timestamp:    time.Now().UTC(),
		Data:         data,
	}
}

func (e Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher is the notifier hook the engine emits through. Implementations
// must not fail the caller: publishing is fire-and-forget.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher drops every event. Useful default when no delivery channel
// is wired.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

func StateChangedEvent(tournamentID string, from, to string) Event {
	return New(StateChanged, tournamentID, map[string]any{
		"from_state": from,
		"to_state":   to,
	})
}

func MatchResultEvent(tournamentID, matchID string, winner *string, isDraw bool, round int) Event {
	data := map[string]any{
		"match_id": matchID,
		"is_draw":  isDraw,
		"round":    round,
	}
	if winner != nil {
		data["winner"] = *winner
	}
	return New(MatchResult, tournamentID, data)
}

func RoundStartedEvent(tournamentID string, round, matchCount int) Event {
	return New(RoundStarted, tournamentID, map[string]any{
		"round":         round,
		"matches_count": matchCount,
	})
}

func KnockoutStartedEvent(tournamentID string, round, matchCount int) Event {
	return New(KnockoutStarted, tournamentID, map[string]any{
		"round":         round,
		"matches_count": matchCount,
	})
}

func TournamentCompletedEvent(tournamentID string, winner *string, format string) Event {
	data := map[string]any{"format": format}
	if winner != nil {
		data["winner"] = *winner
	}
	return New(TournamentCompleted, tournamentID, data)
}

func TeamRegisteredEvent(tournamentID, teamID, name string) Event {
	return New(TeamRegistered, tournamentID, map[string]any{
		"team_id": teamID,
		"name":    name,
	})
}
