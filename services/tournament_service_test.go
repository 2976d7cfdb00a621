package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracketline/tournament-engine/elo"
	"github.com/bracketline/tournament-engine/events"
	"github.com/bracketline/tournament-engine/lifecycle"
	"github.com/bracketline/tournament-engine/models"
	"github.com/bracketline/tournament-engine/repositories"
)

func newTestService() (*TournamentService, *MatchEngine, *repositories.MemoryStore) {
	store := repositories.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := NewMatchEngine(
		store.Tournaments(),
		store.TeamsRepo(),
		store.MatchesRepo(),
		store.EloHistoryRepo(),
		elo.NewCalculator(elo.DefaultKFactor),
		events.NopPublisher{},
		logger,
	)
	service := NewTournamentService(store.Tournaments(), engine, nil, events.NopPublisher{}, logger)
	return service, engine, store
}

func openAndFill(t *testing.T, service *TournamentService, engine *MatchEngine, input CreateTournamentInput, teams int) *models.Tournament {
	t.Helper()
	tour, err := service.Create(context.Background(), input)
	require.NoError(t, err)
	tour, err = service.Publish(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	for i := 1; i <= teams; i++ {
		_, err = engine.RegisterTeam(context.Background(), tour.TournamentID,
			fmt.Sprintf("team_%d", i), fmt.Sprintf("Team %d", i), fmt.Sprintf("captain_%d", i))
		require.NoError(t, err)
	}
	return tour
}

// settleRound records a decisive team1 win for every pending match of the
// current round and returns the winners.
func settleRound(t *testing.T, service *TournamentService, engine *MatchEngine, tour *models.Tournament, round int) []string {
	t.Helper()
	pending := models.MatchStatusPending
	matches, err := engine.Matches(context.Background(), tour.ID, repositories.MatchFilter{Round: &round, Status: &pending})
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	var winners []string
	for _, m := range matches {
		winnerID := *m.Team1ID
		winners = append(winners, winnerID)
		_, err = service.RecordResult(context.Background(), tour.TournamentID, m.MatchID, MatchResult{WinnerID: &winnerID})
		require.NoError(t, err)
	}
	return winners
}

func TestCreateGeneratesNameAndPublicID(t *testing.T) {
	service, _, _ := newTestService()

	tour, err := service.Create(context.Background(), CreateTournamentInput{})
	require.NoError(t, err)

	assert.NotEmpty(t, tour.Name)
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9-]+-[0-9a-f]{8}$`), tour.TournamentID)
	assert.Equal(t, models.StatusDraft, tour.Status)
	assert.Equal(t, models.FormatSingleElimination, tour.Format)
	assert.Equal(t, 2, tour.MinTeams)
}

func TestCreateRejectsUnknownFormat(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), CreateTournamentInput{Format: "double_elimination"})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCreateHybridDefaults(t *testing.T) {
	service, _, _ := newTestService()

	tour, err := service.Create(context.Background(), CreateTournamentInput{Format: models.FormatHybrid})
	require.NoError(t, err)
	assert.Equal(t, 2, tour.NumGroups)
	assert.Equal(t, 2, tour.TeamsPerGroupAdvance)
}

func TestPublishOpensRegistration(t *testing.T) {
	service, _, _ := newTestService()

	tour, err := service.Create(context.Background(), CreateTournamentInput{Name: "Open Cup"})
	require.NoError(t, err)

	tour, err = service.Publish(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRegistration, tour.Status)

	_, err = service.Publish(context.Background(), tour.TournamentID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestStartRequiresMinimumTeams(t *testing.T) {
	service, engine, _ := newTestService()
	tour := openAndFill(t, service, engine, CreateTournamentInput{MinTeams: 4}, 3)

	_, err := service.Start(context.Background(), tour.TournamentID)
	assert.ErrorIs(t, err, ErrNotEnoughTeams)
}

func TestStartHybridNeedsTwoTeamsPerGroup(t *testing.T) {
	service, engine, _ := newTestService()
	tour := openAndFill(t, service, engine, CreateTournamentInput{Format: models.FormatHybrid}, 2)

	_, err := service.Start(context.Background(), tour.TournamentID)
	assert.ErrorIs(t, err, ErrNotEnoughTeams)

	// A refused start must leave the tournament untouched.
	tour, err = service.Get(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRegistration, tour.Status)
	assert.Zero(t, tour.CurrentRound)
	assert.Nil(t, tour.StartTime)

	matches, err := engine.Matches(context.Background(), tour.ID, repositories.MatchFilter{})
	require.NoError(t, err)
	assert.Empty(t, matches)

	for i := 3; i <= 4; i++ {
		_, err = engine.RegisterTeam(context.Background(), tour.TournamentID,
			fmt.Sprintf("team_%d", i), fmt.Sprintf("Team %d", i), fmt.Sprintf("captain_%d", i))
		require.NoError(t, err)
	}
	tour, err = service.Start(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, tour.Status)
	assert.Equal(t, 1, tour.CurrentRound)
}

func TestConcurrentResultsAdvanceRoundOnce(t *testing.T) {
	service, engine, _ := newTestService()
	tour := openAndFill(t, service, engine, CreateTournamentInput{}, 4)
	tour, err := service.Start(context.Background(), tour.TournamentID)
	require.NoError(t, err)

	round := 1
	matches, err := engine.Matches(context.Background(), tour.ID, repositories.MatchFilter{Round: &round})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Both results land at the same time; whichever closes the round
	// advances, the other must see the new round and do nothing.
	var wg sync.WaitGroup
	errs := make(chan error, len(matches))
	for _, m := range matches {
		wg.Add(1)
		go func(m *models.Match) {
			defer wg.Done()
			winnerID := *m.Team1ID
			_, err := service.RecordResult(context.Background(), tour.TournamentID, m.MatchID, MatchResult{WinnerID: &winnerID})
			errs <- err
		}(m)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	nextRound := 2
	finals, err := engine.Matches(context.Background(), tour.ID, repositories.MatchFilter{Round: &nextRound})
	require.NoError(t, err)
	assert.Len(t, finals, 1)
}

func TestCancelReturnsToDraft(t *testing.T) {
	service, engine, _ := newTestService()
	tour := openAndFill(t, service, engine, CreateTournamentInput{}, 2)

	tour, err := service.Cancel(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, tour.Status)
	assert.Zero(t, tour.CurrentRound)
}

func TestUpdateOnlyEditsDrafts(t *testing.T) {
	service, _, _ := newTestService()

	tour, err := service.Create(context.Background(), CreateTournamentInput{Name: "Editable"})
	require.NoError(t, err)

	newName := "Renamed Cup"
	tour, err = service.Update(context.Background(), tour.TournamentID, UpdateTournamentInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Cup", tour.Name)

	_, err = service.Publish(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	_, err = service.Update(context.Background(), tour.TournamentID, UpdateTournamentInput{Name: &newName})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestDeleteOnlyRemovesDrafts(t *testing.T) {
	service, engine, _ := newTestService()

	draft, err := service.Create(context.Background(), CreateTournamentInput{})
	require.NoError(t, err)
	require.NoError(t, service.Delete(context.Background(), draft.TournamentID))
	_, err = service.Get(context.Background(), draft.TournamentID)
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	published := openAndFill(t, service, engine, CreateTournamentInput{}, 2)
	err = service.Delete(context.Background(), published.TournamentID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestAllowedActionsFollowStatus(t *testing.T) {
	service, _, _ := newTestService()

	tour, err := service.Create(context.Background(), CreateTournamentInput{})
	require.NoError(t, err)

	actions, err := service.AllowedActions(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	assert.Contains(t, actions, lifecycle.ActionPublish)
	assert.NotContains(t, actions, lifecycle.ActionRecordResult)
}

func TestSingleEliminationEndToEnd(t *testing.T) {
	service, engine, _ := newTestService()
	tour := openAndFill(t, service, engine, CreateTournamentInput{Name: "Knockout Cup"}, 8)

	tour, err := service.Start(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, tour.Status)
	assert.Equal(t, 1, tour.CurrentRound)
	assert.NotNil(t, tour.StartTime)

	// Quarterfinals, semifinals, final. Results auto-advance each round.
	settleRound(t, service, engine, tour, 1)
	settleRound(t, service, engine, tour, 2)
	finalWinners := settleRound(t, service, engine, tour, 3)
	require.Len(t, finalWinners, 1)

	tour, err = service.Get(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, tour.Status)
	require.NotNil(t, tour.WinnerTeamID)
	assert.Equal(t, finalWinners[0], *tour.WinnerTeamID)
	assert.NotNil(t, tour.EndTime)

	winner, err := service.Winner(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, finalWinners[0], *winner)
}

func TestRoundRobinEndToEnd(t *testing.T) {
	service, engine, _ := newTestService()
	tour := openAndFill(t, service, engine, CreateTournamentInput{
		Name:       "League Season",
		Format:     models.FormatRoundRobin,
		AllowDraws: true,
	}, 3)

	tour, err := service.Start(context.Background(), tour.TournamentID)
	require.NoError(t, err)

	// Three rounds, one match each (odd field, one team rests per round).
	for round := 1; round <= 3; round++ {
		settleRound(t, service, engine, tour, round)
	}

	tour, err = service.Get(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, tour.Status)
	require.NotNil(t, tour.WinnerTeamID)

	table, err := engine.Standings(context.Background(), tour.ID)
	require.NoError(t, err)
	assert.Equal(t, table[0].TeamID, *tour.WinnerTeamID)
}

func TestHybridEndToEnd(t *testing.T) {
	service, engine, _ := newTestService()
	tour := openAndFill(t, service, engine, CreateTournamentInput{
		Name:                 "Group Stage Cup",
		Format:               models.FormatHybrid,
		NumGroups:            2,
		TeamsPerGroupAdvance: 2,
	}, 4)

	tour, err := service.Start(context.Background(), tour.TournamentID)
	require.NoError(t, err)

	groupStage := models.StageGroup
	groupMatches, err := engine.Matches(context.Background(), tour.ID, repositories.MatchFilter{Stage: &groupStage})
	require.NoError(t, err)
	require.Len(t, groupMatches, 2)
	for _, m := range groupMatches {
		assert.NotNil(t, m.GroupName)
	}

	teams, err := engine.Teams(context.Background(), tour.ID)
	require.NoError(t, err)
	for _, team := range teams {
		require.NotNil(t, team.GroupName)
	}

	// Settling the single group round seeds the knockout bracket.
	settleRound(t, service, engine, tour, 1)

	knockoutStage := models.StageKnockout
	knockoutMatches, err := engine.Matches(context.Background(), tour.ID, repositories.MatchFilter{Stage: &knockoutStage})
	require.NoError(t, err)
	require.Len(t, knockoutMatches, 2)

	settleRound(t, service, engine, tour, 2)
	settleRound(t, service, engine, tour, 3)

	tour, err = service.Get(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, tour.Status)
	assert.NotNil(t, tour.WinnerTeamID)
}

func TestWinnerUnavailableWhileRunning(t *testing.T) {
	service, engine, _ := newTestService()
	tour := openAndFill(t, service, engine, CreateTournamentInput{}, 2)

	_, err := service.Winner(context.Background(), tour.TournamentID)
	assert.ErrorIs(t, err, ErrTournamentNotOver)
}

func TestArchiveOnlyAfterCompletion(t *testing.T) {
	service, engine, _ := newTestService()
	tour := openAndFill(t, service, engine, CreateTournamentInput{}, 2)

	_, err := service.Archive(context.Background(), tour.TournamentID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	tour, err = service.Start(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	settleRound(t, service, engine, tour, 1)

	tour, err = service.Archive(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, tour.Status)
}
