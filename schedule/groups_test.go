package schedule

import (
	"testing"

	"github.com/bracketline/tournament-engine/elo"
	"github.com/bracketline/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignGroups_DistributesEvenly(t *testing.T) {
	groups, err := AssignGroups(seeds(8), 2)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Len(t, groups["A"], 4)
	assert.Len(t, groups["B"], 4)

	seen := map[string]bool{}
	for label, members := range groups {
		for _, m := range members {
			assert.Equal(t, label, m.Group)
			assert.False(t, seen[m.TeamID], "team %s assigned twice", m.TeamID)
			seen[m.TeamID] = true
		}
	}
	assert.Len(t, seen, 8)
}

func TestAssignGroups_UnevenFieldSpreadsRemainder(t *testing.T) {
	groups, err := AssignGroups(seeds(7), 3)

	require.NoError(t, err)
	total := 0
	for _, members := range groups {
		total += len(members)
		assert.GreaterOrEqual(t, len(members), 2)
	}
	assert.Equal(t, 7, total)
}

func TestAssignGroups_RejectsTooFewTeams(t *testing.T) {
	_, err := AssignGroups(seeds(5), 3)
	assert.ErrorIs(t, err, ErrNotEnoughTeamsForGroups)

	_, err = AssignGroups(seeds(4), 0)
	assert.ErrorIs(t, err, ErrNotEnoughTeamsForGroups)
}

func TestGroupStageRounds_TagsGroupAndStage(t *testing.T) {
	calc := elo.NewCalculator(elo.DefaultKFactor)
	groups, err := AssignGroups(seeds(8), 2)
	require.NoError(t, err)

	rounds := GroupStageRounds(groups, calc)

	// Four teams per group: three circle rounds, two matches per group.
	require.Len(t, rounds, 3)
	ids := map[string]bool{}
	for _, round := range rounds {
		assert.Len(t, round, 4)
		for _, m := range round {
			assert.Equal(t, models.StageGroup, m.Stage)
			assert.Contains(t, []string{"A", "B"}, m.Group)
			assert.False(t, ids[m.MatchID], "duplicate id %s", m.MatchID)
			ids[m.MatchID] = true
		}
	}
}

func TestGroupStageRounds_PairsStayInsideGroups(t *testing.T) {
	calc := elo.NewCalculator(elo.DefaultKFactor)
	groups, err := AssignGroups(seeds(12), 3)
	require.NoError(t, err)

	membership := map[string]string{}
	for label, members := range groups {
		for _, m := range members {
			membership[m.TeamID] = label
		}
	}

	for _, round := range GroupStageRounds(groups, calc) {
		for _, m := range round {
			assert.Equal(t, membership[m.Team1ID], membership[m.Team2ID])
			assert.Equal(t, m.Group, membership[m.Team1ID])
		}
	}
}

func TestKnockoutFromGroups_SeedsInGroupLabelOrder(t *testing.T) {
	calc := elo.NewCalculator(elo.DefaultKFactor)
	standings := map[string][]TeamSeed{
		"B": {{TeamID: "b1", Rating: 1520}, {TeamID: "b2", Rating: 1490}, {TeamID: "b3", Rating: 1400}},
		"A": {{TeamID: "a1", Rating: 1560}, {TeamID: "a2", Rating: 1510}, {TeamID: "a3", Rating: 1450}},
	}

	matches := KnockoutFromGroups(standings, 2, 4, calc)

	require.Len(t, matches, 2)
	assert.Equal(t, "a1", matches[0].Team1ID)
	assert.Equal(t, "a2", matches[0].Team2ID)
	assert.Equal(t, "b1", matches[1].Team1ID)
	assert.Equal(t, "b2", matches[1].Team2ID)
	for _, m := range matches {
		assert.Equal(t, models.StageKnockout, m.Stage)
		assert.Equal(t, 4, m.Round)
		assert.Empty(t, m.Group)
	}
}

func TestKnockoutFromGroups_TooFewQualifiers(t *testing.T) {
	calc := elo.NewCalculator(elo.DefaultKFactor)
	standings := map[string][]TeamSeed{
		"A": {{TeamID: "a1"}},
	}

	assert.Nil(t, KnockoutFromGroups(standings, 1, 2, calc))
	assert.Nil(t, KnockoutFromGroups(map[string][]TeamSeed{}, 2, 2, calc))
}

func TestKnockoutFromGroups_AdvanceCountClampedToGroupSize(t *testing.T) {
	calc := elo.NewCalculator(elo.DefaultKFactor)
	standings := map[string][]TeamSeed{
		"A": {{TeamID: "a1"}, {TeamID: "a2"}},
		"B": {{TeamID: "b1"}},
	}

	matches := KnockoutFromGroups(standings, 2, 2, calc)

	require.Len(t, matches, 1)
	assert.Equal(t, "a1", matches[0].Team1ID)
	assert.Equal(t, "a2", matches[0].Team2ID)
	// b1 is the odd qualifier out, same trailing-team rule as elimination
	// pairing.
}
