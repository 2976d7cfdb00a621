package models

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusAbandoned MatchStatus = "abandoned"
)

type MatchStage string

const (
	StageGroup    MatchStage = "group"
	StageKnockout MatchStage = "knockout"
)

// Match references its two teams by their tournament-scoped team ids.
// Either side may be nil (the schema allows byes even though the current
// generators never produce them). Win probabilities are captured from ELO
// ratings at creation time and never recalculated.
type Match struct {
	ID           int     `json:"-" db:"id"`
	MatchID      string  `json:"id" db:"match_id"`
	TournamentID int     `json:"-" db:"tournament_id"`
	Round        int     `json:"round" db:"round"`
	Team1ID      *string `json:"team1" db:"team1_id"`
	Team2ID      *string `json:"team2" db:"team2_id"`
	WinnerID     *string `json:"winner" db:"winner_id"`
	IsDraw       bool    `json:"is_draw" db:"is_draw"`

	Team1Score *int `json:"team1_score,omitempty" db:"team1_score"`
	Team2Score *int `json:"team2_score,omitempty" db:"team2_score"`

	GroupName *string    `json:"group,omitempty" db:"group_name"`
	Stage     MatchStage `json:"stage" db:"stage"`

	Team1WinProbability *float64 `json:"team1_win_probability,omitempty" db:"team1_win_probability"`
	Team2WinProbability *float64 `json:"team2_win_probability,omitempty" db:"team2_win_probability"`

	Status MatchStatus `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// HasTeam reports whether the given team id plays in this match.
func (m *Match) HasTeam(teamID string) bool {
	if m.Team1ID != nil && *m.Team1ID == teamID {
		return true
	}
	return m.Team2ID != nil && *m.Team2ID == teamID
}

// Opponent returns the other side of the match, or nil for a bye slot.
func (m *Match) Opponent(teamID string) *string {
	if m.Team1ID != nil && *m.Team1ID == teamID {
		return m.Team2ID
	}
	if m.Team2ID != nil && *m.Team2ID == teamID {
		return m.Team1ID
	}
	return nil
}

// IsSettled reports whether the match no longer blocks round advancement.
func (m *Match) IsSettled() bool {
	return m.Status == MatchStatusCompleted || m.Status == MatchStatusAbandoned
}
