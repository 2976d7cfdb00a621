package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFillsDefaults(t *testing.T) {
	e := New(TournamentCreated, "spring-cup-ab12cd34", nil)

	assert.Equal(t, TournamentCreated, e.Type)
	assert.Equal(t, "spring-cup-ab12cd34", e.TournamentID)
	assert.NotNil(t, e.Data)
	assert.False(t, e.Timestamp.IsZero())
}

func TestEventJSONRoundTrip(t *testing.T) {
	winner := "team_3"
	e := MatchResultEvent("spring-cup-ab12cd34", "r2_m1", &winner, false, 2)

	payload, err := e.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "match.result", decoded["type"])
	assert.Equal(t, "spring-cup-ab12cd34", decoded["tournament_id"])

	data, ok := decoded["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "team_3", data["winner"])
	assert.Equal(t, false, data["is_draw"])
	assert.Equal(t, float64(2), data["round"])
}

func TestMatchResultEventOmitsNilWinner(t *testing.T) {
	e := MatchResultEvent("spring-cup-ab12cd34", "r1_m2", nil, true, 1)

	_, present := e.Data["winner"]
	assert.False(t, present)
	assert.Equal(t, true, e.Data["is_draw"])
}

func TestStateChangedEventPayload(t *testing.T) {
	e := StateChangedEvent("spring-cup-ab12cd34", "registration", "active")

	assert.Equal(t, StateChanged, e.Type)
	assert.Equal(t, "registration", e.Data["from_state"])
	assert.Equal(t, "active", e.Data["to_state"])
}
