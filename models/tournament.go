package models

import "time"

// TournamentStatus mirrors the lifecycle states persisted in the DB.
type TournamentStatus string

const (
	StatusDraft        TournamentStatus = "draft"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusArchived     TournamentStatus = "archived"
)

type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "single_elimination"
	FormatRoundRobin        TournamentFormat = "round_robin"
	FormatHybrid            TournamentFormat = "hybrid"
)

// Tournament owns its teams and matches (cascade delete at the storage
// layer). CurrentRound only moves forward, except for the explicit
// cancel-to-draft transition which resets it to zero.
type Tournament struct {
	ID           int              `json:"id" db:"id"`
	TournamentID string           `json:"tournament_id" db:"tournament_id"`
	Name         string           `json:"name" db:"name"`
	Format       TournamentFormat `json:"format" db:"format"`
	Status       TournamentStatus `json:"status" db:"status"`
	CurrentRound int              `json:"current_round" db:"current_round"`

	MaxTeams int `json:"max_teams" db:"max_teams"`
	MinTeams int `json:"min_teams" db:"min_teams"`

	// Hybrid (group + knockout) settings. NumGroups == 0 means no groups.
	NumGroups            int  `json:"num_groups" db:"num_groups"`
	GroupStageRounds     int  `json:"group_stage_rounds" db:"group_stage_rounds"`
	TeamsPerGroupAdvance int  `json:"teams_per_group_advance" db:"teams_per_group_advance"`
	AllowDraws           bool `json:"allow_draws" db:"allow_draws"`

	WinnerTeamID *string `json:"winner_team_id,omitempty" db:"winner_team_id"`

	ScheduledStart *time.Time `json:"scheduled_start,omitempty" db:"scheduled_start"`
	StartTime      *time.Time `json:"start_time,omitempty" db:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty" db:"end_time"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	Teams   []Team  `json:"teams,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`
}
