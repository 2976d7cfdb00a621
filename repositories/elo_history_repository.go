package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bracketline/tournament-engine/models"
)

type EloHistoryRepository interface {
	Create(ctx context.Context, entry *models.EloHistory) error
	ListByTeam(ctx context.Context, teamDBID int) ([]*models.EloHistory, error)
}

type postgresEloHistoryRepository struct {
	db *sql.DB
}

func NewPostgresEloHistoryRepository(db *sql.DB) EloHistoryRepository {
	return &postgresEloHistoryRepository{db: db}
}

func (r *postgresEloHistoryRepository) Create(ctx context.Context, entry *models.EloHistory) error {
	query := `
		INSERT INTO elo_history
			(team_id, match_id, old_rating, new_rating, rating_change, opponent_rating, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.TeamDBID,
		entry.MatchID,
		entry.OldRating,
		entry.NewRating,
		entry.RatingChange,
		entry.OpponentRating,
		entry.Result,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert elo history for team %d: %w", entry.TeamDBID, err)
	}
	return nil
}

func (r *postgresEloHistoryRepository) ListByTeam(ctx context.Context, teamDBID int) ([]*models.EloHistory, error) {
	query := `
		SELECT id, team_id, match_id, old_rating, new_rating, rating_change,
		       opponent_rating, result, created_at
		FROM elo_history
		WHERE team_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamDBID)
	if err != nil {
		return nil, fmt.Errorf("failed to query elo history for team %d: %w", teamDBID, err)
	}
	defer rows.Close()

	entries := make([]*models.EloHistory, 0)
	for rows.Next() {
		e := &models.EloHistory{}
		err = rows.Scan(
			&e.ID,
			&e.TeamDBID,
			&e.MatchID,
			&e.OldRating,
			&e.NewRating,
			&e.RatingChange,
			&e.OpponentRating,
			&e.Result,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan elo history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during elo history rows iteration: %w", err)
	}
	return entries, nil
}
