package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bracketline/tournament-engine/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetByPublicID(ctx context.Context, tournamentID string) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus, limit, offset int) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `
	id, tournament_id, name, format, status, current_round,
	max_teams, min_teams, num_groups, group_stage_rounds,
	teams_per_group_advance, allow_draws, winner_team_id,
	scheduled_start, start_time, end_time, created_at, updated_at`

func scanTournament(row interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := row.Scan(
		&t.ID,
		&t.TournamentID,
		&t.Name,
		&t.Format,
		&t.Status,
		&t.CurrentRound,
		&t.MaxTeams,
		&t.MinTeams,
		&t.NumGroups,
		&t.GroupStageRounds,
		&t.TeamsPerGroupAdvance,
		&t.AllowDraws,
		&t.WinnerTeamID,
		&t.ScheduledStart,
		&t.StartTime,
		&t.EndTime,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments
			(tournament_id, name, format, status, current_round, max_teams, min_teams,
			 num_groups, group_stage_rounds, teams_per_group_advance, allow_draws,
			 winner_team_id, scheduled_start, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		tournament.TournamentID,
		tournament.Name,
		tournament.Format,
		tournament.Status,
		tournament.CurrentRound,
		tournament.MaxTeams,
		tournament.MinTeams,
		tournament.NumGroups,
		tournament.GroupStageRounds,
		tournament.TeamsPerGroupAdvance,
		tournament.AllowDraws,
		tournament.WinnerTeamID,
		tournament.ScheduledStart,
		tournament.StartTime,
		tournament.EndTime,
	).Scan(&tournament.ID, &tournament.CreatedAt, &tournament.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tournament %q: %w", tournament.TournamentID, err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament by id %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) GetByPublicID(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE tournament_id = $1`

	t, err := scanTournament(r.db.QueryRowContext(ctx, query, tournamentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament %q: %w", tournamentID, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, status *models.TournamentStatus, limit, offset int) ([]*models.Tournament, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT` + tournamentColumns + ` FROM tournaments`)

	args := make([]interface{}, 0, 3)
	if status != nil {
		queryBuilder.WriteString(" WHERE status = $1")
		args = append(args, *status)
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	if limit > 0 {
		queryBuilder.WriteString(" LIMIT $" + strconv.Itoa(len(args)+1))
		args = append(args, limit)
	}
	if offset > 0 {
		queryBuilder.WriteString(" OFFSET $" + strconv.Itoa(len(args)+1))
		args = append(args, offset)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, scanErr := scanTournament(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", scanErr)
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $1, format = $2, status = $3, current_round = $4,
		    max_teams = $5, min_teams = $6, num_groups = $7,
		    group_stage_rounds = $8, teams_per_group_advance = $9,
		    allow_draws = $10, winner_team_id = $11, scheduled_start = $12,
		    start_time = $13, end_time = $14, updated_at = NOW()
		WHERE id = $15`

	result, err := r.db.ExecContext(ctx, query,
		tournament.Name,
		tournament.Format,
		tournament.Status,
		tournament.CurrentRound,
		tournament.MaxTeams,
		tournament.MinTeams,
		tournament.NumGroups,
		tournament.GroupStageRounds,
		tournament.TeamsPerGroupAdvance,
		tournament.AllowDraws,
		tournament.WinnerTeamID,
		tournament.ScheduledStart,
		tournament.StartTime,
		tournament.EndTime,
		tournament.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tournament %d: %w", tournament.ID, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	// teams, matches and elo history cascade at the schema level
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
