package schedule

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/bracketline/tournament-engine/elo"
	"github.com/bracketline/tournament-engine/models"
)

// ErrNotEnoughTeamsForGroups is returned when the field cannot give every
// group at least two teams.
var ErrNotEnoughTeamsForGroups = errors.New("not enough teams for the requested number of groups")

const groupAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GroupLabels returns the labels for n groups in order: A, B, C, …
func GroupLabels(n int) []string {
	labels := make([]string, 0, n)
	for i := 0; i < n && i < len(groupAlphabet); i++ {
		labels = append(labels, string(groupAlphabet[i]))
	}
	return labels
}

// AssignGroups shuffles the field and deals teams into numGroups labeled
// groups round-robin style (index modulo group count).
func AssignGroups(teams []TeamSeed, numGroups int) (map[string][]TeamSeed, error) {
	if numGroups < 1 {
		return nil, ErrNotEnoughTeamsForGroups
	}
	if len(teams) < 2*numGroups {
		return nil, ErrNotEnoughTeamsForGroups
	}

	shuffled := make([]TeamSeed, len(teams))
	copy(shuffled, teams)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	labels := GroupLabels(numGroups)
	groups := make(map[string][]TeamSeed, numGroups)
	for i, team := range shuffled {
		label := labels[i%numGroups]
		team.Group = label
		groups[label] = append(groups[label], team)
	}
	return groups, nil
}

// GroupStageRounds runs the circle method independently inside each group
// and merges the per-group schedules round by round, every match tagged
// with its group label and the group stage.
func GroupStageRounds(groups map[string][]TeamSeed, calc *elo.Calculator) [][]GeneratedMatch {
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var merged [][]GeneratedMatch
	for _, label := range labels {
		rounds := circleRounds(groups[label], label, calc)
		for i, matches := range rounds {
			for len(merged) <= i {
				merged = append(merged, nil)
			}
			merged[i] = append(merged[i], matches...)
		}
	}
	return merged
}

// KnockoutFromGroups seeds an elimination round from group standings: the
// top advancePerGroup teams of each group, concatenated in group-label
// order, paired consecutively. No cross-bracket seeding. Returns nil when
// fewer than two teams qualify.
func KnockoutFromGroups(groupStandings map[string][]TeamSeed, advancePerGroup, round int, calc *elo.Calculator) []GeneratedMatch {
	labels := make([]string, 0, len(groupStandings))
	for label := range groupStandings {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var qualifiers []TeamSeed
	for _, label := range labels {
		ranked := groupStandings[label]
		take := advancePerGroup
		if take > len(ranked) {
			take = len(ranked)
		}
		qualifiers = append(qualifiers, ranked[:take]...)
	}

	if len(qualifiers) < 2 {
		return nil
	}
	return PairConsecutive(qualifiers, round, models.StageKnockout, calc)
}
