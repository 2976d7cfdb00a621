package models

import "time"

type EloResult string

const (
	EloResultWin  EloResult = "win"
	EloResultLoss EloResult = "loss"
	EloResultDraw EloResult = "draw"
)

// EloHistory is a write-once audit row: one per participant per decisive
// match outcome. TeamDBID references the owning team's surrogate key.
type EloHistory struct {
	ID             int       `json:"id" db:"id"`
	TeamDBID       int       `json:"-" db:"team_id"`
	MatchID        string    `json:"match_id" db:"match_id"`
	OldRating      int       `json:"old_rating" db:"old_rating"`
	NewRating      int       `json:"new_rating" db:"new_rating"`
	RatingChange   int       `json:"rating_change" db:"rating_change"`
	OpponentRating int       `json:"opponent_rating" db:"opponent_rating"`
	Result         EloResult `json:"result" db:"result"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
