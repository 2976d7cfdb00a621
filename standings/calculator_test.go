package standings

import (
	"testing"

	"github.com/bracketline/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func team(id string, wins, losses, draws, goalsFor, goalsAgainst int) *models.Team {
	return &models.Team{
		TeamID:       id,
		Name:         "Team " + id,
		Captain:      "Captain " + id,
		Wins:         wins,
		Losses:       losses,
		Draws:        draws,
		Points:       wins*3 + draws,
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
		EloRating:    models.DefaultEloRating,
	}
}

func TestCalculate_OrdersByPointsThenGoalDifferenceThenGoalsFor(t *testing.T) {
	teams := []*models.Team{
		team("a", 3, 1, 0, 8, 6),  // 9 pts, +2
		team("b", 3, 1, 0, 10, 5), // 9 pts, +5
		team("c", 2, 2, 0, 4, 4),  // 6 pts, 0
	}

	rows := Calculate(teams)

	require.Len(t, rows, 3)
	assert.Equal(t, "b", rows[0].TeamID)
	assert.Equal(t, "a", rows[1].TeamID)
	assert.Equal(t, "c", rows[2].TeamID)
	assert.Equal(t, []int{1, 2, 3}, []int{rows[0].Rank, rows[1].Rank, rows[2].Rank})
}

func TestCalculate_GoalsForBreaksEqualDifference(t *testing.T) {
	teams := []*models.Team{
		team("low", 2, 0, 0, 3, 1),  // +2, 3 scored
		team("high", 2, 0, 0, 6, 4), // +2, 6 scored
	}

	rows := Calculate(teams)

	assert.Equal(t, "high", rows[0].TeamID)
	assert.Equal(t, "low", rows[1].TeamID)
}

func TestCalculate_FullTieKeepsInsertionOrder(t *testing.T) {
	teams := []*models.Team{
		team("first", 1, 1, 0, 2, 2),
		team("second", 1, 1, 0, 2, 2),
		team("third", 1, 1, 0, 2, 2),
	}

	rows := Calculate(teams)

	assert.Equal(t, "first", rows[0].TeamID)
	assert.Equal(t, "second", rows[1].TeamID)
	assert.Equal(t, "third", rows[2].TeamID)
}

func TestCalculate_DerivedFields(t *testing.T) {
	rows := Calculate([]*models.Team{team("a", 2, 1, 1, 7, 3)})

	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].GamesPlayed)
	assert.Equal(t, 7, rows[0].Points) // 2*3 + 1
	assert.Equal(t, 4, rows[0].GoalDifference)
	assert.InDelta(t, 50.0, rows[0].WinRate, 1e-9)
}

func TestCalculate_WinRateRoundedToOneDecimal(t *testing.T) {
	rows := Calculate([]*models.Team{team("a", 1, 2, 0, 0, 0)})

	require.Len(t, rows, 1)
	assert.InDelta(t, 33.3, rows[0].WinRate, 1e-9)
}

func TestCalculate_NoGamesPlayed(t *testing.T) {
	rows := Calculate([]*models.Team{team("a", 0, 0, 0, 0, 0)})

	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].WinRate)
	assert.Zero(t, rows[0].GamesPlayed)
}

func TestCalculateByGroup_RanksIndependently(t *testing.T) {
	groupA := "A"
	groupB := "B"
	t1 := team("a1", 2, 0, 0, 4, 0)
	t1.GroupName = &groupA
	t2 := team("a2", 0, 2, 0, 0, 4)
	t2.GroupName = &groupA
	t3 := team("b1", 1, 1, 0, 2, 2)
	t3.GroupName = &groupB
	ungrouped := team("x", 5, 0, 0, 10, 0)

	byGroup := CalculateByGroup([]*models.Team{t1, t2, t3, ungrouped})

	require.Len(t, byGroup, 2)
	require.Len(t, byGroup["A"], 2)
	assert.Equal(t, "a1", byGroup["A"][0].TeamID)
	assert.Equal(t, 1, byGroup["A"][0].Rank)
	assert.Equal(t, 2, byGroup["A"][1].Rank)
	require.Len(t, byGroup["B"], 1)
	assert.Equal(t, 1, byGroup["B"][0].Rank)
}
