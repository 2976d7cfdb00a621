package schedule

import (
	"fmt"

	"github.com/bracketline/tournament-engine/elo"
	"github.com/bracketline/tournament-engine/models"
)

// TeamSeed is the slice of team state the generators need: identity for
// pairing, record for seeding, rating for win-probability annotation.
type TeamSeed struct {
	TeamID string
	Name   string
	Rating int
	Wins   int
	Losses int
	Group  string
}

// GeneratedMatch is a not-yet-persisted pairing. Probabilities are captured
// from the seeds' ratings at generation time.
type GeneratedMatch struct {
	MatchID             string
	Round               int
	Team1ID             string
	Team2ID             string
	Group               string
	Stage               models.MatchStage
	Team1WinProbability float64
	Team2WinProbability float64
}

func matchID(round, seq int) string {
	return fmt.Sprintf("r%d_m%d", round, seq)
}

func groupMatchID(group string, round, seq int) string {
	return fmt.Sprintf("g%s_r%d_m%d", group, round, seq)
}

// seedKey is the legacy seeding weight: recent wins dominate, losses drag.
func seedKey(s TeamSeed) int {
	return s.Wins*100 - s.Losses*50
}

func newMatch(id string, round int, stage models.MatchStage, group string, t1, t2 TeamSeed, calc *elo.Calculator) GeneratedMatch {
	p1, p2 := calc.WinProbability(t1.Rating, t2.Rating)
	return GeneratedMatch{
		MatchID:             id,
		Round:               round,
		Team1ID:             t1.TeamID,
		Team2ID:             t2.TeamID,
		Group:               group,
		Stage:               stage,
		Team1WinProbability: p1,
		Team2WinProbability: p2,
	}
}

// Model converts a generated match into a persistable record for the given
// tournament.
func (g GeneratedMatch) Model(tournamentDBID int) *models.Match {
	team1 := g.Team1ID
	team2 := g.Team2ID
	p1 := g.Team1WinProbability
	p2 := g.Team2WinProbability
	m := &models.Match{
		MatchID:             g.MatchID,
		TournamentID:        tournamentDBID,
		Round:               g.Round,
		Team1ID:             &team1,
		Team2ID:             &team2,
		Stage:               g.Stage,
		Status:              models.MatchStatusPending,
		Team1WinProbability: &p1,
		Team2WinProbability: &p2,
	}
	if g.Group != "" {
		group := g.Group
		m.GroupName = &group
	}
	return m
}
