// Package workers runs the background jobs: sweeping overdue rounds and
// starting scheduled tournaments.
package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/bracketline/tournament-engine/models"
	"github.com/bracketline/tournament-engine/repositories"
	"github.com/bracketline/tournament-engine/services"
)

// AutoAdvanceWorker periodically settles rounds that blew their deadline.
// Every pending match of an overdue round is abandoned, which lets the
// round close and the tournament advance.
type AutoAdvanceWorker struct {
	service       *services.TournamentService
	engine        *services.MatchEngine
	tournaments   repositories.TournamentRepository
	interval      time.Duration
	roundDuration time.Duration
	logger        *slog.Logger
	scheduler     gocron.Scheduler
}

func NewAutoAdvanceWorker(
	service *services.TournamentService,
	engine *services.MatchEngine,
	tournamentRepo repositories.TournamentRepository,
	interval time.Duration,
	roundDuration time.Duration,
	logger *slog.Logger,
) *AutoAdvanceWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoAdvanceWorker{
		service:       service,
		engine:        engine,
		tournaments:   tournamentRepo,
		interval:      interval,
		roundDuration: roundDuration,
		logger:        logger,
	}
}

func (w *AutoAdvanceWorker) Start() error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	w.scheduler = scheduler

	if _, err := scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.sweep),
	); err != nil {
		return err
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.startScheduled),
	); err != nil {
		return err
	}

	scheduler.Start()
	return nil
}

func (w *AutoAdvanceWorker) Stop() {
	if w.scheduler != nil {
		_ = w.scheduler.Shutdown()
	}
}

// sweep abandons every pending match of an active tournament whose current
// round has run past the deadline. The last abandon closes the round and
// auto-advances.
func (w *AutoAdvanceWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status := models.StatusActive
	active, err := w.tournaments.List(ctx, &status, 0, 0)
	if err != nil {
		w.logger.Error("auto-advance sweep failed to list active tournaments", slog.Any("error", err))
		return
	}

	for _, t := range active {
		// UpdatedAt moves on every round advance, so it marks when the
		// current round opened.
		if time.Since(t.UpdatedAt) < w.roundDuration {
			continue
		}

		pending := models.MatchStatusPending
		round := t.CurrentRound
		overdue, err := w.engine.Matches(ctx, t.ID, repositories.MatchFilter{Round: &round, Status: &pending})
		if err != nil {
			w.logger.Error("auto-advance sweep failed to list matches",
				slog.String("tournament", t.TournamentID), slog.Any("error", err))
			continue
		}
		if len(overdue) == 0 {
			continue
		}

		w.logger.Info("abandoning overdue round",
			slog.String("tournament", t.TournamentID),
			slog.Int("round", round),
			slog.Int("matches", len(overdue)))
		for _, m := range overdue {
			if _, err := w.service.AbandonMatch(ctx, t.TournamentID, m.MatchID); err != nil &&
				!errors.Is(err, services.ErrMatchAlreadySettled) {
				w.logger.Error("failed to abandon overdue match",
					slog.String("tournament", t.TournamentID),
					slog.String("match", m.MatchID),
					slog.Any("error", err))
			}
		}
	}
}

// startScheduled kicks off registration-phase tournaments whose scheduled
// start has passed and that already have enough teams.
func (w *AutoAdvanceWorker) startScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status := models.StatusRegistration
	open, err := w.tournaments.List(ctx, &status, 0, 0)
	if err != nil {
		w.logger.Error("scheduler failed to list open tournaments", slog.Any("error", err))
		return
	}

	now := time.Now().UTC()
	for _, t := range open {
		if t.ScheduledStart == nil || t.ScheduledStart.After(now) {
			continue
		}
		if _, err := w.service.Start(ctx, t.TournamentID); err != nil {
			if errors.Is(err, services.ErrNotEnoughTeams) {
				continue
			}
			w.logger.Error("failed to start scheduled tournament",
				slog.String("tournament", t.TournamentID),
				slog.Any("error", err))
			continue
		}
		w.logger.Info("scheduled tournament started", slog.String("tournament", t.TournamentID))
	}
}
