package models

import "time"

const DefaultEloRating = 1500

// Team is a registered entrant. TeamID is unique within its tournament.
// EloRating is mutated only by the rating calculator as a side effect of a
// decisive completed match.
type Team struct {
	ID           int     `json:"-" db:"id"`
	TeamID       string  `json:"team_id" db:"team_id"`
	TournamentID int     `json:"-" db:"tournament_id"`
	Name         string  `json:"name" db:"name"`
	Captain      string  `json:"captain" db:"captain"`
	GroupName    *string `json:"group,omitempty" db:"group_name"`

	Wins         int `json:"wins" db:"wins"`
	Losses       int `json:"losses" db:"losses"`
	Draws        int `json:"draws" db:"draws"`
	Points       int `json:"points" db:"points"`
	GoalsFor     int `json:"goals_for" db:"goals_for"`
	GoalsAgainst int `json:"goals_against" db:"goals_against"`
	EloRating    int `json:"elo_rating" db:"elo_rating"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`

	EloHistory []EloHistory `json:"elo_history,omitempty" db:"-"`
}

func (t *Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

func (t *Team) GamesPlayed() int {
	return t.Wins + t.Losses + t.Draws
}
