package services

import (
	"context"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/bracketline/tournament-engine/models"
)

// FindTeams fuzzy-matches the query against team names and ids, best
// matches first. An empty query returns every team unchanged.
func (e *MatchEngine) FindTeams(ctx context.Context, tournamentDBID int, query string) ([]*models.Team, error) {
	teams, err := e.teams.ListByTournament(ctx, tournamentDBID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return teams, nil
	}

	type scored struct {
		team *models.Team
		rank int
	}
	matched := make([]scored, 0, len(teams))
	for _, team := range teams {
		rank := fuzzy.RankMatchNormalizedFold(query, team.Name)
		if idRank := fuzzy.RankMatchNormalizedFold(query, team.TeamID); idRank >= 0 && (rank < 0 || idRank < rank) {
			rank = idRank
		}
		if rank < 0 {
			continue
		}
		matched = append(matched, scored{team: team, rank: rank})
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].rank < matched[j].rank })

	out := make([]*models.Team, 0, len(matched))
	for _, m := range matched {
		out = append(out, m.team)
	}
	return out, nil
}
