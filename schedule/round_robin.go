package schedule

import (
	"github.com/bracketline/tournament-engine/elo"
	"github.com/bracketline/tournament-engine/models"
)

// RoundRobinRounds builds a full circle-method schedule: every team meets
// every other exactly once. An odd field is padded with a bye slot; a pair
// involving the bye slot simply produces no match that round. Position 0
// stays fixed while the rest of the field rotates one step per round.
//
// Matches are tagged with the league stage so draw rules apply when the
// tournament permits them; only elimination matches carry the knockout tag.
func RoundRobinRounds(teams []TeamSeed, calc *elo.Calculator) [][]GeneratedMatch {
	return circleRounds(teams, "", calc)
}

func circleRounds(teams []TeamSeed, group string, calc *elo.Calculator) [][]GeneratedMatch {
	if len(teams) < 2 {
		return nil
	}

	slots := make([]*TeamSeed, 0, len(teams)+1)
	for i := range teams {
		t := teams[i]
		slots = append(slots, &t)
	}
	if len(slots)%2 == 1 {
		slots = append(slots, nil) // bye slot
	}
	n := len(slots)

	rounds := make([][]GeneratedMatch, 0, n-1)
	for roundIdx := 0; roundIdx < n-1; roundIdx++ {
		round := roundIdx + 1
		matches := make([]GeneratedMatch, 0, n/2)
		for i := 0; i < n/2; i++ {
			t1 := slots[i]
			t2 := slots[n-1-i]
			if t1 == nil || t2 == nil {
				continue
			}
			id := matchID(round, len(matches)+1)
			if group != "" {
				id = groupMatchID(group, round, len(matches)+1)
			}
			matches = append(matches, newMatch(id, round, models.StageGroup, group, *t1, *t2, calc))
		}
		rounds = append(rounds, matches)

		// Rotate: keep slot 0 anchored, move the last slot to position 1.
		rotated := make([]*TeamSeed, 0, n)
		rotated = append(rotated, slots[0], slots[n-1])
		rotated = append(rotated, slots[1:n-1]...)
		slots = rotated
	}

	return rounds
}
