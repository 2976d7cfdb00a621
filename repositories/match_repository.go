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

var ErrMatchNotFound = errors.New("match not found")

// MatchFilter narrows ListByTournament. Nil fields are ignored.
type MatchFilter struct {
	Round  *int
	Status *models.MatchStatus
	Stage  *models.MatchStage
}

type MatchRepository interface {
	CreateBatch(ctx context.Context, matches []*models.Match) error
	GetByMatchID(ctx context.Context, tournamentDBID int, matchID string) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentDBID int, filter MatchFilter) ([]*models.Match, error)
	CountPending(ctx context.Context, tournamentDBID int, round int) (int, error)
	Update(ctx context.Context, match *models.Match) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, match_id, tournament_id, round, team1_id, team2_id, winner_id,
	is_draw, team1_score, team2_score, group_name, stage,
	team1_win_probability, team2_win_probability, status,
	created_at, updated_at`

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	err := row.Scan(
		&m.ID,
		&m.MatchID,
		&m.TournamentID,
		&m.Round,
		&m.Team1ID,
		&m.Team2ID,
		&m.WinnerID,
		&m.IsDraw,
		&m.Team1Score,
		&m.Team2Score,
		&m.GroupName,
		&m.Stage,
		&m.Team1WinProbability,
		&m.Team2WinProbability,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateBatch inserts a generated round inside one transaction so a failed
// insert never leaves a partially scheduled round behind.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin match batch transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO matches
			(match_id, tournament_id, round, team1_id, team2_id, winner_id,
			 is_draw, team1_score, team2_score, group_name, stage,
			 team1_win_probability, team2_win_probability, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		err = stmt.QueryRowContext(ctx,
			m.MatchID,
			m.TournamentID,
			m.Round,
			m.Team1ID,
			m.Team2ID,
			m.WinnerID,
			m.IsDraw,
			m.Team1Score,
			m.Team2Score,
			m.GroupName,
			m.Stage,
			m.Team1WinProbability,
			m.Team2WinProbability,
			m.Status,
		).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert match %q: %w", m.MatchID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match batch: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByMatchID(ctx context.Context, tournamentDBID int, matchID string) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE tournament_id = $1 AND match_id = $2`

	m, err := scanMatch(r.db.QueryRowContext(ctx, query, tournamentDBID, matchID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %q: %w", matchID, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentDBID int, filter MatchFilter) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentDBID}
	if filter.Round != nil {
		queryBuilder.WriteString(" AND round = $" + strconv.Itoa(len(args)+1))
		args = append(args, *filter.Round)
	}
	if filter.Status != nil {
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Stage != nil {
		queryBuilder.WriteString(" AND stage = $" + strconv.Itoa(len(args)+1))
		args = append(args, *filter.Stage)
	}
	queryBuilder.WriteString(" ORDER BY round ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentDBID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) CountPending(ctx context.Context, tournamentDBID int, round int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE tournament_id = $1 AND round = $2 AND status = $3`,
		tournamentDBID, round, models.MatchStatusPending,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending matches for tournament %d round %d: %w", tournamentDBID, round, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET winner_id = $1, is_draw = $2, team1_score = $3, team2_score = $4,
		    status = $5, updated_at = NOW()
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		match.WinnerID,
		match.IsDraw,
		match.Team1Score,
		match.Team2Score,
		match.Status,
		match.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match %d: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
