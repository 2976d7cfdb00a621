package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bracketline/tournament-engine/elo"
	"github.com/bracketline/tournament-engine/events"
	"github.com/bracketline/tournament-engine/models"
	"github.com/bracketline/tournament-engine/repositories"
	"github.com/bracketline/tournament-engine/schedule"
	"github.com/bracketline/tournament-engine/standings"
)

// MatchResult is the caller's report of how a match ended. A decisive
// result names the winner; a draw leaves WinnerID nil and sets IsDraw.
type MatchResult struct {
	WinnerID   *string
	IsDraw     bool
	Team1Score *int
	Team2Score *int
}

// AdvanceOutcome describes what advancing a tournament round produced.
type AdvanceOutcome struct {
	NextRound       int
	MatchesCreated  int
	KnockoutStarted bool
	Completed       bool
	Winner          *string
}

// MatchEngine owns every in-tournament mutation: registration, schedule
// generation, result recording and round advancement. Mutations for the
// same tournament are serialized on a per-tournament mutex; the lifecycle
// transitions around them belong to TournamentService.
type MatchEngine struct {
	tournaments repositories.TournamentRepository
	teams       repositories.TeamRepository
	matches     repositories.MatchRepository
	eloHistory  repositories.EloHistoryRepository

	calc      *elo.Calculator
	publisher events.Publisher
	logger    *slog.Logger

	locks sync.Map // tournament db id -> *sync.Mutex
}

func NewMatchEngine(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	eloHistoryRepo repositories.EloHistoryRepository,
	calc *elo.Calculator,
	publisher events.Publisher,
	logger *slog.Logger,
) *MatchEngine {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchEngine{
		tournaments: tournamentRepo,
		teams:       teamRepo,
		matches:     matchRepo,
		eloHistory:  eloHistoryRepo,
		calc:        calc,
		publisher:   publisher,
		logger:      logger,
	}
}

func (e *MatchEngine) lock(tournamentDBID int) func() {
	muAny, _ := e.locks.LoadOrStore(tournamentDBID, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (e *MatchEngine) getTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	t, err := e.tournaments.GetByPublicID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %q: %w", tournamentID, err)
	}
	return t, nil
}

// RegisterTeam adds an entrant while registration is open. The team starts
// at the default rating with a zeroed record.
func (e *MatchEngine) RegisterTeam(ctx context.Context, tournamentID, teamID, name, captain string) (*models.Team, error) {
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	t, err := e.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	unlock := e.lock(t.ID)
	defer unlock()

	if t.Status != models.StatusRegistration {
		return nil, ErrRegistrationNotOpen
	}

	count, err := e.teams.CountByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count registered teams: %w", err)
	}
	if t.MaxTeams > 0 && count >= t.MaxTeams {
		return nil, ErrTournamentFull
	}

	team := &models.Team{
		TeamID:       teamID,
		TournamentID: t.ID,
		Name:         name,
		Captain:      captain,
		EloRating:    models.DefaultEloRating,
	}
	if err := e.teams.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamConflict) {
			return nil, ErrTeamAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to register team %q: %w", teamID, err)
	}

	e.publisher.Publish(events.TeamRegisteredEvent(t.TournamentID, team.TeamID, team.Name))
	e.logger.Info("team registered",
		slog.String("tournament", t.TournamentID),
		slog.String("team", team.TeamID))
	return team, nil
}

// UnregisterTeam withdraws an entrant before the tournament starts.
func (e *MatchEngine) UnregisterTeam(ctx context.Context, tournamentID, teamID string) error {
	t, err := e.getTournament(ctx, tournamentID)
	if err != nil {
		return err
	}

	unlock := e.lock(t.ID)
	defer unlock()

	if t.Status != models.StatusRegistration {
		return ErrRegistrationNotOpen
	}

	if err := e.teams.Delete(ctx, t.ID, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to unregister team %q: %w", teamID, err)
	}

	e.publisher.Publish(events.New(events.TeamUnregistered, t.TournamentID, map[string]any{"team_id": teamID}))
	return nil
}

func teamSeeds(teams []*models.Team) []schedule.TeamSeed {
	seeds := make([]schedule.TeamSeed, 0, len(teams))
	for _, t := range teams {
		seed := schedule.TeamSeed{
			TeamID: t.TeamID,
			Name:   t.Name,
			Rating: t.EloRating,
			Wins:   t.Wins,
			Losses: t.Losses,
		}
		if t.GroupName != nil {
			seed.Group = *t.GroupName
		}
		seeds = append(seeds, seed)
	}
	return seeds
}

func (e *MatchEngine) persistGenerated(ctx context.Context, tournamentDBID int, generated []schedule.GeneratedMatch) (int, error) {
	records := make([]*models.Match, 0, len(generated))
	for _, g := range generated {
		records = append(records, g.Model(tournamentDBID))
	}
	if err := e.matches.CreateBatch(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to persist generated matches: %w", err)
	}
	return len(records), nil
}

// StartSingleElimination seeds the registered field and creates the first
// bracket round.
func (e *MatchEngine) StartSingleElimination(ctx context.Context, t *models.Tournament) (int, error) {
	teams, err := e.teams.ListByTournament(ctx, t.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to load teams: %w", err)
	}
	if len(teams) < 2 {
		return 0, ErrNotEnoughTeams
	}

	generated := schedule.PairSingleElimination(teamSeeds(teams), 1, e.calc)
	created, err := e.persistGenerated(ctx, t.ID, generated)
	if err != nil {
		return 0, err
	}

	e.publisher.Publish(events.RoundStartedEvent(t.TournamentID, 1, created))
	return created, nil
}

// StartRoundRobin persists the complete league schedule up front. Later
// rounds exist from the start; advancing only moves the current-round
// pointer.
func (e *MatchEngine) StartRoundRobin(ctx context.Context, t *models.Tournament) (int, error) {
	teams, err := e.teams.ListByTournament(ctx, t.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to load teams: %w", err)
	}
	if len(teams) < 2 {
		return 0, ErrNotEnoughTeams
	}

	rounds := schedule.RoundRobinRounds(teamSeeds(teams), e.calc)
	total := 0
	for _, round := range rounds {
		created, err := e.persistGenerated(ctx, t.ID, round)
		if err != nil {
			return total, err
		}
		total += created
	}

	firstRound := 0
	if len(rounds) > 0 {
		firstRound = len(rounds[0])
	}
	e.publisher.Publish(events.RoundStartedEvent(t.TournamentID, 1, firstRound))
	return total, nil
}

// StartGroupStage deals the field into groups, stamps each team with its
// group label, and persists the full group-stage schedule.
func (e *MatchEngine) StartGroupStage(ctx context.Context, t *models.Tournament) (int, error) {
	teams, err := e.teams.ListByTournament(ctx, t.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to load teams: %w", err)
	}

	groups, err := schedule.AssignGroups(teamSeeds(teams), t.NumGroups)
	if err != nil {
		return 0, err
	}

	assigned := make(map[string]string, len(teams))
	for label, members := range groups {
		for _, member := range members {
			assigned[member.TeamID] = label
		}
	}
	for _, team := range teams {
		label := assigned[team.TeamID]
		team.GroupName = &label
		if err := e.teams.Update(ctx, team); err != nil {
			return 0, fmt.Errorf("failed to store group assignment for team %q: %w", team.TeamID, err)
		}
	}
	e.publisher.Publish(events.New(events.GroupsAssigned, t.TournamentID, map[string]any{
		"num_groups": t.NumGroups,
	}))

	rounds := schedule.GroupStageRounds(groups, e.calc)
	total := 0
	for _, round := range rounds {
		created, err := e.persistGenerated(ctx, t.ID, round)
		if err != nil {
			return total, err
		}
		total += created
	}

	firstRound := 0
	if len(rounds) > 0 {
		firstRound = len(rounds[0])
	}
	e.publisher.Publish(events.RoundStartedEvent(t.TournamentID, 1, firstRound))
	return total, nil
}

// RecordResult settles a pending match, updates both teams' records, and
// applies rating changes for decisive results. Draws are legal only in
// league-stage matches of tournaments that permit them, and never move
// ratings.
func (e *MatchEngine) RecordResult(ctx context.Context, tournamentID, matchID string, result MatchResult) (*models.Match, error) {
	t, err := e.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	unlock := e.lock(t.ID)
	defer unlock()

	if t.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}

	match, err := e.matches.GetByMatchID(ctx, t.ID, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %q: %w", matchID, err)
	}
	if match.IsSettled() {
		return nil, ErrMatchAlreadySettled
	}

	if result.IsDraw {
		if !t.AllowDraws || match.Stage == models.StageKnockout {
			return nil, ErrDrawNotAllowed
		}
	} else {
		if result.WinnerID == nil {
			return nil, ErrWinnerRequired
		}
		if !match.HasTeam(*result.WinnerID) {
			return nil, ErrWinnerNotInMatch
		}
	}

	if match.Team1ID == nil || match.Team2ID == nil {
		return nil, ErrMatchNotFound
	}
	team1, err := e.teams.GetByTeamID(ctx, t.ID, *match.Team1ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team %q: %w", *match.Team1ID, err)
	}
	team2, err := e.teams.GetByTeamID(ctx, t.ID, *match.Team2ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team %q: %w", *match.Team2ID, err)
	}

	applyScores(team1, team2, result)

	if result.IsDraw {
		match.IsDraw = true
		match.WinnerID = nil
		team1.Draws++
		team2.Draws++
		team1.Points++
		team2.Points++
	} else {
		winner, loser := team1, team2
		if *result.WinnerID == team2.TeamID {
			winner, loser = team2, team1
		}
		match.WinnerID = result.WinnerID
		match.IsDraw = false
		winner.Wins++
		winner.Points += 3
		loser.Losses++

		if err := e.applyRatings(ctx, match.MatchID, winner, loser); err != nil {
			return nil, err
		}
	}

	match.Team1Score = result.Team1Score
	match.Team2Score = result.Team2Score
	match.Status = models.MatchStatusCompleted

	if err := e.teams.Update(ctx, team1); err != nil {
		return nil, fmt.Errorf("failed to update team %q: %w", team1.TeamID, err)
	}
	if err := e.teams.Update(ctx, team2); err != nil {
		return nil, fmt.Errorf("failed to update team %q: %w", team2.TeamID, err)
	}
	if err := e.matches.Update(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match %q: %w", match.MatchID, err)
	}

	e.publisher.Publish(events.MatchResultEvent(t.TournamentID, match.MatchID, match.WinnerID, match.IsDraw, match.Round))
	e.logger.Info("match result recorded",
		slog.String("tournament", t.TournamentID),
		slog.String("match", match.MatchID),
		slog.Bool("draw", match.IsDraw))
	return match, nil
}

func applyScores(team1, team2 *models.Team, result MatchResult) {
	if result.Team1Score == nil || result.Team2Score == nil {
		return
	}
	team1.GoalsFor += *result.Team1Score
	team1.GoalsAgainst += *result.Team2Score
	team2.GoalsFor += *result.Team2Score
	team2.GoalsAgainst += *result.Team1Score
}

func (e *MatchEngine) applyRatings(ctx context.Context, matchID string, winner, loser *models.Team) error {
	oldWinner, oldLoser := winner.EloRating, loser.EloRating
	winner.EloRating, loser.EloRating = e.calc.RatingChange(oldWinner, oldLoser)

	entries := []*models.EloHistory{
		{
			TeamDBID:       winner.ID,
			MatchID:        matchID,
			OldRating:      oldWinner,
			NewRating:      winner.EloRating,
			RatingChange:   winner.EloRating - oldWinner,
			OpponentRating: oldLoser,
			Result:         models.EloResultWin,
		},
		{
			TeamDBID:       loser.ID,
			MatchID:        matchID,
			OldRating:      oldLoser,
			NewRating:      loser.EloRating,
			RatingChange:   loser.EloRating - oldLoser,
			OpponentRating: oldWinner,
			Result:         models.EloResultLoss,
		},
	}
	for _, entry := range entries {
		if err := e.eloHistory.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to write elo history for match %q: %w", matchID, err)
		}
	}
	return nil
}

// AbandonMatch settles a match nobody finished. Both sides take a loss and
// neither scores points; ratings are untouched. The match stops blocking
// round advancement.
func (e *MatchEngine) AbandonMatch(ctx context.Context, tournamentID, matchID string) (*models.Match, error) {
	t, err := e.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	unlock := e.lock(t.ID)
	defer unlock()

	if t.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}

	match, err := e.matches.GetByMatchID(ctx, t.ID, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %q: %w", matchID, err)
	}
	if match.IsSettled() {
		return nil, ErrMatchAlreadySettled
	}

	for _, teamID := range []*string{match.Team1ID, match.Team2ID} {
		if teamID == nil {
			continue
		}
		team, err := e.teams.GetByTeamID(ctx, t.ID, *teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to load team %q: %w", *teamID, err)
		}
		team.Losses++
		if err := e.teams.Update(ctx, team); err != nil {
			return nil, fmt.Errorf("failed to update team %q: %w", *teamID, err)
		}
	}

	match.Status = models.MatchStatusAbandoned
	match.WinnerID = nil
	match.IsDraw = false
	if err := e.matches.Update(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match %q: %w", match.MatchID, err)
	}

	e.publisher.Publish(events.New(events.MatchAbandoned, t.TournamentID, map[string]any{
		"match_id": match.MatchID,
		"round":    match.Round,
	}))
	return match, nil
}

// RoundComplete reports whether the given round has no pending matches left.
func (e *MatchEngine) RoundComplete(ctx context.Context, tournamentDBID, round int) (bool, error) {
	pending, err := e.matches.CountPending(ctx, tournamentDBID, round)
	if err != nil {
		return false, fmt.Errorf("failed to count pending matches: %w", err)
	}
	return pending == 0, nil
}

// Advance moves the tournament to its next phase once the current round is
// settled. Depending on format and phase that means pairing the next bracket
// round, unlocking the next pre-generated league round, seeding the knockout
// stage from group standings, or declaring the tournament over.
func (e *MatchEngine) Advance(ctx context.Context, t *models.Tournament) (*AdvanceOutcome, error) {
	unlock := e.lock(t.ID)
	defer unlock()

	// The caller's snapshot may predate a concurrent advance of the same
	// round. Re-read under the lock and work off the fresh record so two
	// callers cannot both generate the next round.
	fresh, err := e.tournaments.GetByID(ctx, t.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to reload tournament: %w", err)
	}
	*t = *fresh

	if t.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}

	complete, err := e.RoundComplete(ctx, t.ID, t.CurrentRound)
	if err != nil {
		return nil, err
	}
	if !complete {
		return nil, ErrRoundNotComplete
	}

	switch t.Format {
	case models.FormatSingleElimination:
		return e.advanceKnockout(ctx, t)
	case models.FormatRoundRobin:
		return e.advanceLeague(ctx, t, false)
	case models.FormatHybrid:
		return e.advanceHybrid(ctx, t)
	default:
		return nil, ErrInvalidFormat
	}
}

// roundWinners returns the winning seeds of the round in match order.
// Abandoned matches contribute nobody.
func (e *MatchEngine) roundWinners(ctx context.Context, t *models.Tournament, round int) ([]schedule.TeamSeed, error) {
	matches, err := e.matches.ListByTournament(ctx, t.ID, repositories.MatchFilter{Round: &round})
	if err != nil {
		return nil, fmt.Errorf("failed to load round %d matches: %w", round, err)
	}

	seeds := make([]schedule.TeamSeed, 0, len(matches))
	for _, m := range matches {
		if m.WinnerID == nil {
			continue
		}
		team, err := e.teams.GetByTeamID(ctx, t.ID, *m.WinnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load winner %q: %w", *m.WinnerID, err)
		}
		seeds = append(seeds, teamSeeds([]*models.Team{team})...)
	}
	return seeds, nil
}

func (e *MatchEngine) advanceKnockout(ctx context.Context, t *models.Tournament) (*AdvanceOutcome, error) {
	winners, err := e.roundWinners(ctx, t, t.CurrentRound)
	if err != nil {
		return nil, err
	}

	if len(winners) <= 1 {
		outcome := &AdvanceOutcome{Completed: true}
		if len(winners) == 1 {
			id := winners[0].TeamID
			outcome.Winner = &id
			t.WinnerTeamID = &id
		}
		return outcome, nil
	}

	nextRound := t.CurrentRound + 1
	generated := schedule.PairConsecutive(winners, nextRound, models.StageKnockout, e.calc)
	created, err := e.persistGenerated(ctx, t.ID, generated)
	if err != nil {
		return nil, err
	}

	t.CurrentRound = nextRound
	if err := e.tournaments.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to advance tournament round: %w", err)
	}

	e.publisher.Publish(events.RoundStartedEvent(t.TournamentID, nextRound, created))
	return &AdvanceOutcome{NextRound: nextRound, MatchesCreated: created}, nil
}

// advanceLeague unlocks the next pre-generated league round, or closes the
// league once every round is settled. groupStage restricts the round lookup
// to group matches so a hybrid tournament's knockout rounds don't count.
func (e *MatchEngine) advanceLeague(ctx context.Context, t *models.Tournament, groupStage bool) (*AdvanceOutcome, error) {
	filter := repositories.MatchFilter{}
	if groupStage {
		stage := models.StageGroup
		filter.Stage = &stage
	}
	matches, err := e.matches.ListByTournament(ctx, t.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	lastRound := 0
	for _, m := range matches {
		if m.Round > lastRound {
			lastRound = m.Round
		}
	}

	if t.CurrentRound < lastRound {
		nextRound := t.CurrentRound + 1
		count := 0
		for _, m := range matches {
			if m.Round == nextRound {
				count++
			}
		}
		t.CurrentRound = nextRound
		if err := e.tournaments.Update(ctx, t); err != nil {
			return nil, fmt.Errorf("failed to advance tournament round: %w", err)
		}
		e.publisher.Publish(events.RoundStartedEvent(t.TournamentID, nextRound, count))
		return &AdvanceOutcome{NextRound: nextRound, MatchesCreated: count}, nil
	}

	if groupStage {
		// Group rounds exhausted; the hybrid path seeds the knockout next.
		return nil, nil
	}

	table, err := e.Standings(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	outcome := &AdvanceOutcome{Completed: true}
	if len(table) > 0 {
		id := table[0].TeamID
		outcome.Winner = &id
		t.WinnerTeamID = &id
	}
	return outcome, nil
}

func (e *MatchEngine) advanceHybrid(ctx context.Context, t *models.Tournament) (*AdvanceOutcome, error) {
	knockoutStage := models.StageKnockout
	knockoutMatches, err := e.matches.ListByTournament(ctx, t.ID, repositories.MatchFilter{Stage: &knockoutStage})
	if err != nil {
		return nil, fmt.Errorf("failed to load knockout matches: %w", err)
	}
	if len(knockoutMatches) > 0 {
		return e.advanceKnockout(ctx, t)
	}

	outcome, err := e.advanceLeague(ctx, t, true)
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		return outcome, nil
	}
	return e.startKnockoutFromGroups(ctx, t)
}

func (e *MatchEngine) startKnockoutFromGroups(ctx context.Context, t *models.Tournament) (*AdvanceOutcome, error) {
	groupTables, err := e.GroupStandings(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	seedsByGroup := make(map[string][]schedule.TeamSeed, len(groupTables))
	for label, table := range groupTables {
		seeds := make([]schedule.TeamSeed, 0, len(table))
		for _, row := range table {
			seeds = append(seeds, schedule.TeamSeed{
				TeamID: row.TeamID,
				Name:   row.Name,
				Rating: row.EloRating,
				Wins:   row.Wins,
				Losses: row.Losses,
				Group:  label,
			})
		}
		seedsByGroup[label] = seeds
	}

	nextRound := t.CurrentRound + 1
	generated := schedule.KnockoutFromGroups(seedsByGroup, t.TeamsPerGroupAdvance, nextRound, e.calc)
	if len(generated) == 0 {
		return nil, ErrNotEnoughTeams
	}

	created, err := e.persistGenerated(ctx, t.ID, generated)
	if err != nil {
		return nil, err
	}

	t.CurrentRound = nextRound
	if err := e.tournaments.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to advance tournament round: %w", err)
	}

	e.publisher.Publish(events.KnockoutStartedEvent(t.TournamentID, nextRound, created))
	return &AdvanceOutcome{NextRound: nextRound, MatchesCreated: created, KnockoutStarted: true}, nil
}

// Standings ranks every registered team.
func (e *MatchEngine) Standings(ctx context.Context, tournamentDBID int) ([]models.Standing, error) {
	teams, err := e.teams.ListByTournament(ctx, tournamentDBID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	return standings.Calculate(teams), nil
}

// GroupStandings ranks each group's teams independently.
func (e *MatchEngine) GroupStandings(ctx context.Context, tournamentDBID int) (map[string][]models.Standing, error) {
	teams, err := e.teams.ListByTournament(ctx, tournamentDBID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	return standings.CalculateByGroup(teams), nil
}

// Teams lists a tournament's entrants in registration order.
func (e *MatchEngine) Teams(ctx context.Context, tournamentDBID int) ([]*models.Team, error) {
	return e.teams.ListByTournament(ctx, tournamentDBID)
}

// Matches lists a tournament's matches, optionally filtered.
func (e *MatchEngine) Matches(ctx context.Context, tournamentDBID int, filter repositories.MatchFilter) ([]*models.Match, error) {
	return e.matches.ListByTournament(ctx, tournamentDBID, filter)
}

// TeamEloHistory returns a team's rating audit trail, oldest first.
func (e *MatchEngine) TeamEloHistory(ctx context.Context, tournamentDBID int, teamID string) ([]*models.EloHistory, error) {
	team, err := e.teams.GetByTeamID(ctx, tournamentDBID, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %q: %w", teamID, err)
	}
	return e.eloHistory.ListByTeam(ctx, team.ID)
}
