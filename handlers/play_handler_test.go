package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracketline/tournament-engine/elo"
	"github.com/bracketline/tournament-engine/events"
	"github.com/bracketline/tournament-engine/models"
	"github.com/bracketline/tournament-engine/repositories"
	"github.com/bracketline/tournament-engine/services"
)

func newPlayFixture() (*PlayHandler, *services.TournamentService, *services.MatchEngine) {
	store := repositories.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := services.NewMatchEngine(
		store.Tournaments(),
		store.TeamsRepo(),
		store.MatchesRepo(),
		store.EloHistoryRepo(),
		elo.NewCalculator(elo.DefaultKFactor),
		events.NopPublisher{},
		logger,
	)
	service := services.NewTournamentService(store.Tournaments(), engine, nil, events.NopPublisher{}, logger)
	return NewPlayHandler(service, engine), service, engine
}

func routedRequest(method, target string, body *bytes.Buffer, params map[string]string) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRecordResultRespondsWithConfirmation(t *testing.T) {
	handler, service, engine := newPlayFixture()

	tour, err := service.Create(context.Background(), services.CreateTournamentInput{Name: "Handler Cup"})
	require.NoError(t, err)
	_, err = service.Publish(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	for _, id := range []string{"team_1", "team_2"} {
		_, err = engine.RegisterTeam(context.Background(), tour.TournamentID, id, id, "cap")
		require.NoError(t, err)
	}
	tour, err = service.Start(context.Background(), tour.TournamentID)
	require.NoError(t, err)

	matches, err := engine.Matches(context.Background(), tour.ID, repositories.MatchFilter{})
	require.NoError(t, err)
	require.Len(t, matches, 1)

	req := routedRequest(http.MethodPost, "/result",
		bytes.NewBufferString(`{"winner_id": "team_1"}`),
		map[string]string{"tournamentID": tour.TournamentID, "matchID": matches[0].MatchID})
	rec := httptest.NewRecorder()

	handler.RecordResult(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string        `json:"message"`
		Match   *models.Match `json:"match"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, matches[0].MatchID)
	assert.Contains(t, resp.Message, "team_1")
	require.NotNil(t, resp.Match)
	assert.Equal(t, models.MatchStatusCompleted, resp.Match.Status)
}

func TestAbandonMatchRespondsWithConfirmation(t *testing.T) {
	handler, service, engine := newPlayFixture()

	tour, err := service.Create(context.Background(), services.CreateTournamentInput{Name: "Handler Cup"})
	require.NoError(t, err)
	_, err = service.Publish(context.Background(), tour.TournamentID)
	require.NoError(t, err)
	for _, id := range []string{"team_1", "team_2"} {
		_, err = engine.RegisterTeam(context.Background(), tour.TournamentID, id, id, "cap")
		require.NoError(t, err)
	}
	tour, err = service.Start(context.Background(), tour.TournamentID)
	require.NoError(t, err)

	matches, err := engine.Matches(context.Background(), tour.ID, repositories.MatchFilter{})
	require.NoError(t, err)
	require.Len(t, matches, 1)

	req := routedRequest(http.MethodPost, "/abandon", nil,
		map[string]string{"tournamentID": tour.TournamentID, "matchID": matches[0].MatchID})
	rec := httptest.NewRecorder()

	handler.AbandonMatch(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string        `json:"message"`
		Match   *models.Match `json:"match"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "abandoned")
	require.NotNil(t, resp.Match)
	assert.Equal(t, models.MatchStatusAbandoned, resp.Match.Status)
}
