package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bracketline/tournament-engine/events"
	"github.com/bracketline/tournament-engine/lifecycle"
	"github.com/bracketline/tournament-engine/models"
	"github.com/bracketline/tournament-engine/naming"
	"github.com/bracketline/tournament-engine/repositories"
)

// CreateTournamentInput carries the caller-supplied tournament settings.
// An empty Name gets a generated one.
type CreateTournamentInput struct {
	Name                 string
	Format               models.TournamentFormat
	MaxTeams             int
	MinTeams             int
	NumGroups            int
	TeamsPerGroupAdvance int
	AllowDraws           bool
	ScheduledStart       *time.Time
}

// UpdateTournamentInput holds the fields editable while a tournament is
// still a draft. Nil fields are left unchanged.
type UpdateTournamentInput struct {
	Name                 *string
	Format               *models.TournamentFormat
	MaxTeams             *int
	MinTeams             *int
	NumGroups            *int
	TeamsPerGroupAdvance *int
	AllowDraws           *bool
	ScheduledStart       *time.Time
}

// Archiver exports a finished tournament's snapshot to durable storage.
type Archiver interface {
	ArchiveTournament(ctx context.Context, t *models.Tournament) (string, error)
}

// TournamentService drives the tournament lifecycle. Every status change
// goes through the state machine; the in-round work is delegated to the
// MatchEngine.
type TournamentService struct {
	tournaments repositories.TournamentRepository
	engine      *MatchEngine
	archiver    Archiver
	publisher   events.Publisher
	logger      *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	engine *MatchEngine,
	archiver Archiver,
	publisher events.Publisher,
	logger *slog.Logger,
) *TournamentService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TournamentService{
		tournaments: tournamentRepo,
		engine:      engine,
		archiver:    archiver,
		publisher:   publisher,
		logger:      logger,
	}
}

func validFormat(f models.TournamentFormat) bool {
	switch f {
	case models.FormatSingleElimination, models.FormatRoundRobin, models.FormatHybrid:
		return true
	}
	return false
}

// Create makes a new draft tournament. Unset sizing fields get sensible
// defaults; hybrid tournaments default to advancing the top two per group.
func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Format == "" {
		input.Format = models.FormatSingleElimination
	}
	if !validFormat(input.Format) {
		return nil, ErrInvalidFormat
	}

	name := input.Name
	if name == "" {
		name = naming.TournamentName()
	}

	minTeams := input.MinTeams
	if minTeams < 2 {
		minTeams = 2
	}

	t := &models.Tournament{
		TournamentID:         naming.PublicID(name),
		Name:                 name,
		Format:               input.Format,
		Status:               models.StatusDraft,
		MaxTeams:             input.MaxTeams,
		MinTeams:             minTeams,
		NumGroups:            input.NumGroups,
		TeamsPerGroupAdvance: input.TeamsPerGroupAdvance,
		AllowDraws:           input.AllowDraws,
		ScheduledStart:       input.ScheduledStart,
	}
	if t.Format == models.FormatHybrid {
		if t.NumGroups < 1 {
			t.NumGroups = 2
		}
		if t.TeamsPerGroupAdvance < 1 {
			t.TeamsPerGroupAdvance = 2
		}
	}

	if err := s.tournaments.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.publisher.Publish(events.New(events.TournamentCreated, t.TournamentID, map[string]any{
		"name":   t.Name,
		"format": string(t.Format),
	}))
	s.logger.Info("tournament created",
		slog.String("tournament", t.TournamentID),
		slog.String("format", string(t.Format)))
	return t, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.tournaments.GetByPublicID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %q: %w", tournamentID, err)
	}
	return t, nil
}

func (s *TournamentService) List(ctx context.Context, status *models.TournamentStatus, limit, offset int) ([]*models.Tournament, error) {
	return s.tournaments.List(ctx, status, limit, offset)
}

// AllowedActions lists what the caller may do with the tournament in its
// current state.
func (s *TournamentService) AllowedActions(ctx context.Context, tournamentID string) ([]string, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return lifecycle.FromString(string(t.Status)).AllowedActions(), nil
}

// transition runs a lifecycle action through the state machine and stamps
// the resulting status on the tournament. The caller persists.
func (s *TournamentService) transition(t *models.Tournament, action string, guardCtx *lifecycle.GuardContext, guards map[string]lifecycle.Guard) error {
	machine := lifecycle.FromString(string(t.Status))
	for name, guard := range guards {
		machine.SetGuard(name, guard)
	}

	from := t.Status
	next, err := machine.Transition(action, guardCtx)
	if err != nil {
		var transitionErr *lifecycle.TransitionError
		if errors.As(err, &transitionErr) {
			return fmt.Errorf("%w: %s", ErrInvalidStatusTransition, transitionErr.Error())
		}
		return err
	}

	t.Status = models.TournamentStatus(next)
	s.publisher.Publish(events.StateChangedEvent(t.TournamentID, string(from), string(next)))
	return nil
}

// Update edits a draft tournament in place.
func (s *TournamentService) Update(ctx context.Context, tournamentID string, input UpdateTournamentInput) (*models.Tournament, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.StatusDraft {
		return nil, fmt.Errorf("%w: only draft tournaments can be edited", ErrInvalidStatusTransition)
	}

	if input.Name != nil && *input.Name != "" {
		t.Name = *input.Name
	}
	if input.Format != nil {
		if !validFormat(*input.Format) {
			return nil, ErrInvalidFormat
		}
		t.Format = *input.Format
	}
	if input.MaxTeams != nil {
		t.MaxTeams = *input.MaxTeams
	}
	if input.MinTeams != nil && *input.MinTeams >= 2 {
		t.MinTeams = *input.MinTeams
	}
	if input.NumGroups != nil {
		t.NumGroups = *input.NumGroups
	}
	if input.TeamsPerGroupAdvance != nil {
		t.TeamsPerGroupAdvance = *input.TeamsPerGroupAdvance
	}
	if input.AllowDraws != nil {
		t.AllowDraws = *input.AllowDraws
	}
	if input.ScheduledStart != nil {
		t.ScheduledStart = input.ScheduledStart
	}

	if err := s.tournaments.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update tournament %q: %w", tournamentID, err)
	}
	return t, nil
}

// Publish opens registration.
func (s *TournamentService) Publish(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(t, lifecycle.ActionPublish, nil, nil); err != nil {
		return nil, err
	}
	if err := s.tournaments.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to publish tournament %q: %w", tournamentID, err)
	}
	s.publisher.Publish(events.New(events.TournamentPublished, t.TournamentID, nil))
	return t, nil
}

// Cancel sends a registration-phase tournament back to draft. Registered
// teams stay; the round counter resets.
func (s *TournamentService) Cancel(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(t, lifecycle.ActionCancel, nil, nil); err != nil {
		return nil, err
	}
	t.CurrentRound = 0
	if err := s.tournaments.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to cancel tournament %q: %w", tournamentID, err)
	}
	return t, nil
}

// Delete removes a draft tournament and everything under it.
func (s *TournamentService) Delete(ctx context.Context, tournamentID string) error {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return err
	}
	if !lifecycle.FromString(string(t.Status)).CanPerform(lifecycle.ActionDelete) {
		return fmt.Errorf("%w: only draft tournaments can be deleted", ErrInvalidStatusTransition)
	}
	if err := s.tournaments.Delete(ctx, t.ID); err != nil {
		return fmt.Errorf("failed to delete tournament %q: %w", tournamentID, err)
	}
	return nil
}

// Start closes registration and generates the opening schedule for the
// tournament's format. The minimum-team guard must pass.
func (s *TournamentService) Start(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	teamCount, err := s.engine.teams.CountByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count teams: %w", err)
	}

	// Every group of a hybrid tournament needs at least two teams, so the
	// guard must hold the start until the field can fill the groups.
	required := t.MinTeams
	if t.Format == models.FormatHybrid && 2*t.NumGroups > required {
		required = 2 * t.NumGroups
	}

	guardCtx := &lifecycle.GuardContext{TeamCount: teamCount}
	guards := map[string]lifecycle.Guard{
		lifecycle.ActionStart: lifecycle.MinTeamsGuard(required),
	}
	if err := s.transition(t, lifecycle.ActionStart, guardCtx, guards); err != nil {
		if errors.Is(err, ErrInvalidStatusTransition) && teamCount < required &&
			t.Status == models.StatusRegistration {
			return nil, ErrNotEnoughTeams
		}
		return nil, err
	}

	t.CurrentRound = 1
	now := time.Now().UTC()
	t.StartTime = &now
	if err := s.tournaments.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to start tournament %q: %w", tournamentID, err)
	}

	var created int
	switch t.Format {
	case models.FormatSingleElimination:
		created, err = s.engine.StartSingleElimination(ctx, t)
	case models.FormatRoundRobin:
		created, err = s.engine.StartRoundRobin(ctx, t)
	case models.FormatHybrid:
		created, err = s.engine.StartGroupStage(ctx, t)
	default:
		err = ErrInvalidFormat
	}
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(events.New(events.TournamentStarted, t.TournamentID, map[string]any{
		"format":  string(t.Format),
		"matches": created,
	}))
	s.logger.Info("tournament started",
		slog.String("tournament", t.TournamentID),
		slog.String("format", string(t.Format)),
		slog.Int("matches", created))
	return t, nil
}

// RecordResult settles a match and, when that closed the round, advances
// the tournament automatically. A finished bracket completes the
// tournament.
func (s *TournamentService) RecordResult(ctx context.Context, tournamentID, matchID string, result MatchResult) (*models.Match, error) {
	match, err := s.engine.RecordResult(ctx, tournamentID, matchID, result)
	if err != nil {
		return nil, err
	}
	if err := s.autoAdvance(ctx, tournamentID); err != nil {
		return nil, err
	}
	return match, nil
}

// AbandonMatch voids a match and advances if it was the last one blocking
// the round.
func (s *TournamentService) AbandonMatch(ctx context.Context, tournamentID, matchID string) (*models.Match, error) {
	match, err := s.engine.AbandonMatch(ctx, tournamentID, matchID)
	if err != nil {
		return nil, err
	}
	if err := s.autoAdvance(ctx, tournamentID); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *TournamentService) autoAdvance(ctx context.Context, tournamentID string) error {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return err
	}

	complete, err := s.engine.RoundComplete(ctx, t.ID, t.CurrentRound)
	if err != nil {
		return err
	}
	if !complete {
		return nil
	}

	outcome, err := s.engine.Advance(ctx, t)
	if err != nil {
		// A concurrent caller may have advanced or finished the
		// tournament between our round check and the engine lock.
		if errors.Is(err, ErrRoundNotComplete) || errors.Is(err, ErrTournamentNotActive) {
			return nil
		}
		return err
	}
	if outcome.Completed {
		if err := s.complete(ctx, t, outcome.Winner); err != nil {
			if errors.Is(err, ErrInvalidStatusTransition) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Advance explicitly moves the tournament forward. Completion of the final
// round finishes the tournament.
func (s *TournamentService) Advance(ctx context.Context, tournamentID string) (*AdvanceOutcome, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.engine.Advance(ctx, t)
	if err != nil {
		return nil, err
	}
	if outcome.Completed {
		if err := s.complete(ctx, t, outcome.Winner); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}

func (s *TournamentService) complete(ctx context.Context, t *models.Tournament, winner *string) error {
	if err := s.transition(t, lifecycle.ActionComplete, nil, nil); err != nil {
		return err
	}
	t.WinnerTeamID = winner
	now := time.Now().UTC()
	t.EndTime = &now
	if err := s.tournaments.Update(ctx, t); err != nil {
		return fmt.Errorf("failed to complete tournament %q: %w", t.TournamentID, err)
	}

	s.publisher.Publish(events.TournamentCompletedEvent(t.TournamentID, winner, string(t.Format)))
	s.logger.Info("tournament completed",
		slog.String("tournament", t.TournamentID),
		slog.Any("winner", winner))
	return nil
}

// Archive freezes a completed tournament. When archive storage is wired,
// a full snapshot is exported first; an export failure blocks archiving.
func (s *TournamentService) Archive(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: only completed tournaments can be archived", ErrInvalidStatusTransition)
	}

	if s.archiver != nil {
		location, archiveErr := s.archiver.ArchiveTournament(ctx, t)
		if archiveErr != nil {
			return nil, fmt.Errorf("failed to export archive snapshot: %w", archiveErr)
		}
		s.logger.Info("tournament snapshot exported",
			slog.String("tournament", t.TournamentID),
			slog.String("location", location))
	}

	if err := s.transition(t, lifecycle.ActionArchive, nil, nil); err != nil {
		return nil, err
	}
	if err := s.tournaments.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to archive tournament %q: %w", tournamentID, err)
	}

	s.publisher.Publish(events.New(events.TournamentArchived, t.TournamentID, nil))
	return t, nil
}

// Winner returns the champion's team id once the tournament is over.
func (s *TournamentService) Winner(ctx context.Context, tournamentID string) (*string, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.StatusCompleted && t.Status != models.StatusArchived {
		return nil, ErrTournamentNotOver
	}
	return t.WinnerTeamID, nil
}
