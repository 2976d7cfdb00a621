package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bracketline/tournament-engine/models"
	"github.com/bracketline/tournament-engine/repositories"
	"github.com/bracketline/tournament-engine/standings"
	"github.com/bracketline/tournament-engine/storage"
)

// TournamentSnapshot is the full exported state of a finished tournament.
type TournamentSnapshot struct {
	Tournament *models.Tournament `json:"tournament"`
	Teams      []*models.Team     `json:"teams"`
	Matches    []*models.Match    `json:"matches"`
	Standings  []models.Standing  `json:"standings"`
	ExportedAt time.Time          `json:"exported_at"`
}

// ArchiveService exports tournament snapshots to object storage before the
// tournament is archived.
type ArchiveService struct {
	teams    repositories.TeamRepository
	matches  repositories.MatchRepository
	history  repositories.EloHistoryRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewArchiveService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	eloHistoryRepo repositories.EloHistoryRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) *ArchiveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchiveService{
		teams:    teamRepo,
		matches:  matchRepo,
		history:  eloHistoryRepo,
		uploader: uploader,
		logger:   logger,
	}
}

// Snapshot gathers the tournament's teams and matches concurrently and
// attaches each team's rating history and the final standings.
func (s *ArchiveService) Snapshot(ctx context.Context, t *models.Tournament) (*TournamentSnapshot, error) {
	var (
		teams   []*models.Team
		matches []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teams.ListByTournament(gCtx, t.ID)
		if err != nil {
			return fmt.Errorf("failed to load teams for snapshot: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matches.ListByTournament(gCtx, t.ID, repositories.MatchFilter{})
		if err != nil {
			return fmt.Errorf("failed to load matches for snapshot: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, team := range teams {
		entries, err := s.history.ListByTeam(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load elo history for team %q: %w", team.TeamID, err)
		}
		for _, entry := range entries {
			team.EloHistory = append(team.EloHistory, *entry)
		}
	}

	return &TournamentSnapshot{
		Tournament: t,
		Teams:      teams,
		Matches:    matches,
		Standings:  standings.Calculate(teams),
		ExportedAt: time.Now().UTC(),
	}, nil
}

// ArchiveTournament exports the snapshot as a JSON object and returns its
// public URL.
func (s *ArchiveService) ArchiveTournament(ctx context.Context, t *models.Tournament) (string, error) {
	if s.uploader == nil {
		return "", ErrArchiveUploadSkipped
	}

	snapshot, err := s.Snapshot(ctx, t)
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot for %q: %w", t.TournamentID, err)
	}

	key := fmt.Sprintf("archives/%s/%s.json", t.TournamentID, snapshot.ExportedAt.Format("20060102T150405Z"))
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot for %q: %w", t.TournamentID, err)
	}

	s.logger.Info("archive snapshot uploaded",
		slog.String("tournament", t.TournamentID),
		slog.String("key", result.Key))
	return result.Location, nil
}
