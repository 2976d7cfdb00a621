package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bracketline/tournament-engine/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrTeamConflict = errors.New("team id already registered in this tournament")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByTeamID(ctx context.Context, tournamentDBID int, teamID string) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentDBID int) ([]*models.Team, error)
	CountByTournament(ctx context.Context, tournamentDBID int) (int, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, tournamentDBID int, teamID string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `
	id, team_id, tournament_id, name, captain, group_name,
	wins, losses, draws, points, goals_for, goals_against, elo_rating,
	created_at, updated_at`

func scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	t := &models.Team{}
	err := row.Scan(
		&t.ID,
		&t.TeamID,
		&t.TournamentID,
		&t.Name,
		&t.Captain,
		&t.GroupName,
		&t.Wins,
		&t.Losses,
		&t.Draws,
		&t.Points,
		&t.GoalsFor,
		&t.GoalsAgainst,
		&t.EloRating,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams
			(team_id, tournament_id, name, captain, group_name,
			 wins, losses, draws, points, goals_for, goals_against, elo_rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		team.TeamID,
		team.TournamentID,
		team.Name,
		team.Captain,
		team.GroupName,
		team.Wins,
		team.Losses,
		team.Draws,
		team.Points,
		team.GoalsFor,
		team.GoalsAgainst,
		team.EloRating,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrTeamConflict
		}
		return fmt.Errorf("failed to insert team %q: %w", team.TeamID, err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByTeamID(ctx context.Context, tournamentDBID int, teamID string) (*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE tournament_id = $1 AND team_id = $2`

	t, err := scanTeam(r.db.QueryRowContext(ctx, query, tournamentDBID, teamID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team %q: %w", teamID, err)
	}
	return t, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentDBID int) ([]*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE tournament_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentDBID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams for tournament %d: %w", tournamentDBID, err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", scanErr)
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team rows iteration: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) CountByTournament(ctx context.Context, tournamentDBID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE tournament_id = $1`, tournamentDBID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams for tournament %d: %w", tournamentDBID, err)
	}
	return count, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams
		SET name = $1, captain = $2, group_name = $3, wins = $4, losses = $5,
		    draws = $6, points = $7, goals_for = $8, goals_against = $9,
		    elo_rating = $10, updated_at = NOW()
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		team.Name,
		team.Captain,
		team.GroupName,
		team.Wins,
		team.Losses,
		team.Draws,
		team.Points,
		team.GoalsFor,
		team.GoalsAgainst,
		team.EloRating,
		team.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update team %d: %w", team.ID, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, tournamentDBID int, teamID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE tournament_id = $1 AND team_id = $2`, tournamentDBID, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team %q: %w", teamID, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
