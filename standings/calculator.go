// Package standings turns team records into ranked tables.
package standings

import (
	"math"
	"sort"

	"github.com/bracketline/tournament-engine/models"
)

// Calculate ranks the given teams: points, then goal difference, then goals
// scored, all descending. The sort is stable, so teams level on every key
// keep their input (registration) order. Ranks start at 1.
func Calculate(teams []*models.Team) []models.Standing {
	rows := make([]models.Standing, 0, len(teams))
	for _, t := range teams {
		played := t.GamesPlayed()
		winRate := 0.0
		if played > 0 {
			winRate = math.Round(float64(t.Wins)/float64(played)*1000) / 10
		}
		rows = append(rows, models.Standing{
			TeamID:         t.TeamID,
			Name:           t.Name,
			Captain:        t.Captain,
			Group:          t.GroupName,
			GamesPlayed:    played,
			Wins:           t.Wins,
			Losses:         t.Losses,
			Draws:          t.Draws,
			Points:         t.Points,
			GoalsFor:       t.GoalsFor,
			GoalsAgainst:   t.GoalsAgainst,
			GoalDifference: t.GoalDifference(),
			WinRate:        winRate,
			EloRating:      t.EloRating,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// CalculateByGroup ranks each group independently, keyed by group label.
// Teams without a group label are skipped.
func CalculateByGroup(teams []*models.Team) map[string][]models.Standing {
	grouped := make(map[string][]*models.Team)
	for _, t := range teams {
		if t.GroupName == nil || *t.GroupName == "" {
			continue
		}
		grouped[*t.GroupName] = append(grouped[*t.GroupName], t)
	}

	out := make(map[string][]models.Standing, len(grouped))
	for label, members := range grouped {
		out[label] = Calculate(members)
	}
	return out
}
