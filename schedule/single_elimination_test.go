package schedule

import (
	"fmt"
	"testing"

	"github.com/bracketline/tournament-engine/elo"
	"github.com/bracketline/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeds(n int) []TeamSeed {
	out := make([]TeamSeed, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, TeamSeed{
			TeamID: fmt.Sprintf("team_%d", i),
			Name:   fmt.Sprintf("Team %d", i),
			Rating: models.DefaultEloRating,
		})
	}
	return out
}

func TestPairSingleElimination_EvenField(t *testing.T) {
	calc := elo.NewCalculator(elo.DefaultKFactor)

	matches := PairSingleElimination(seeds(8), 1, calc)

	require.Len(t, matches, 4)
	for i, m := range matches {
		assert.Equal(t, fmt.Sprintf("r1_m%d", i+1), m.MatchID)
		assert.Equal(t, 1, m.Round)
		assert.Equal(t, models.StageKnockout, m.Stage)
	}
	// Equal records and stable sort: insertion order is preserved.
	assert.Equal(t, "team_1", matches[0].Team1ID)
	assert.Equal(t, "team_2", matches[0].Team2ID)
	assert.Equal(t, "team_7", matches[3].Team1ID)
	assert.Equal(t, "team_8", matches[3].Team2ID)
}

func TestPairSingleElimination_SeedsByRecord(t *testing.T) {
	calc := elo.NewCalculator(elo.DefaultKFactor)
	teams := []TeamSeed{
		{TeamID: "low", Wins: 0, Losses: 2, Rating: 1400},
		{TeamID: "top", Wins: 3, Losses: 0, Rating: 1600},
		{TeamID: "mid", Wins: 1, Losses: 1, Rating: 1500},
		{TeamID: "second", Wins: 2, Losses: 1, Rating: 1550},
	}

	matches := PairSingleElimination(teams, 2, calc)

	require.Len(t, matches, 2)
	assert.Equal(t, "top", matches[0].Team1ID)
	assert.Equal(t, "second", matches[0].Team2ID)
	assert.Equal(t, "mid", matches[1].Team1ID)
	assert.Equal(t, "low", matches[1].Team2ID)
}

func TestPairSingleElimination_OddFieldDropsTrailingTeam(t *testing.T) {
	calc := elo.NewCalculator(elo.DefaultKFactor)

	matches := PairSingleElimination(seeds(7), 1, calc)

	require.Len(t, matches, 3)
	paired := map[string]bool{}
	for _, m := range matches {
		paired[m.Team1ID] = true
		paired[m.Team2ID] = true
	}
	// The unpaired lowest seed gets no match at all. Existing behavior,
	// locked in deliberately.
	assert.False(t, paired["team_7"])
	assert.Len(t, paired, 6)
}

func TestPairSingleElimination_AnnotatesWinProbabilities(t *testing.T) {
	calc := elo.NewCalculator(elo.DefaultKFactor)
	teams := []TeamSeed{
		{TeamID: "a", Rating: 1700},
		{TeamID: "b", Rating: 1300},
	}

	matches := PairSingleElimination(teams, 1, calc)

	require.Len(t, matches, 1)
	m := matches[0]
	assert.InDelta(t, 1.0, m.Team1WinProbability+m.Team2WinProbability, 1e-9)
	assert.Greater(t, m.Team1WinProbability, m.Team2WinProbability)
}

func TestPairConsecutive_KeepsGivenOrder(t *testing.T) {
	calc := elo.NewCalculator(elo.DefaultKFactor)
	teams := []TeamSeed{
		{TeamID: "w1", Wins: 0, Rating: 1500},
		{TeamID: "w2", Wins: 5, Rating: 1500},
		{TeamID: "w3", Wins: 2, Rating: 1500},
		{TeamID: "w4", Wins: 9, Rating: 1500},
	}

	matches := PairConsecutive(teams, 3, models.StageKnockout, calc)

	require.Len(t, matches, 2)
	assert.Equal(t, "w1", matches[0].Team1ID)
	assert.Equal(t, "w2", matches[0].Team2ID)
	assert.Equal(t, "w3", matches[1].Team1ID)
	assert.Equal(t, "w4", matches[1].Team2ID)
}
