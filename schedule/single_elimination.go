package schedule

import (
	"sort"

	"github.com/bracketline/tournament-engine/elo"
	"github.com/bracketline/tournament-engine/models"
)

// PairSingleElimination seeds the field by record (best first, stable) and
// pairs consecutive seeds for the given round. With an odd field the
// trailing lowest seed receives no match and is out of the bracket; that is
// long-standing behavior and is locked in by tests, not a bye-advance.
func PairSingleElimination(teams []TeamSeed, round int, calc *elo.Calculator) []GeneratedMatch {
	seeded := make([]TeamSeed, len(teams))
	copy(seeded, teams)
	sort.SliceStable(seeded, func(i, j int) bool {
		return seedKey(seeded[i]) > seedKey(seeded[j])
	})

	return PairConsecutive(seeded, round, models.StageKnockout, calc)
}

// PairConsecutive pairs teams in the order given (index 0 vs 1, 2 vs 3, …)
// without re-seeding. Used for next-round pairings from winners and for
// knockout qualification, where the incoming order is already meaningful.
func PairConsecutive(teams []TeamSeed, round int, stage models.MatchStage, calc *elo.Calculator) []GeneratedMatch {
	matches := make([]GeneratedMatch, 0, len(teams)/2)
	for i := 0; i+1 < len(teams); i += 2 {
		id := matchID(round, len(matches)+1)
		matches = append(matches, newMatch(id, round, stage, "", teams[i], teams[i+1], calc))
	}
	return matches
}
