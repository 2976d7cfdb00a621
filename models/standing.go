package models

// Standing is a derived leaderboard row; it is never persisted.
type Standing struct {
	Rank           int     `json:"rank"`
	TeamID         string  `json:"team_id"`
	Name           string  `json:"name"`
	Captain        string  `json:"captain"`
	Group          *string `json:"group,omitempty"`
	GamesPlayed    int     `json:"games_played"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Draws          int     `json:"draws"`
	Points         int     `json:"points"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	GoalDifference int     `json:"goal_difference"`
	WinRate        float64 `json:"win_rate"`
	EloRating      int     `json:"elo_rating"`
}
