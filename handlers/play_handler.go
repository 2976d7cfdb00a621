package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bracketline/tournament-engine/models"
	"github.com/bracketline/tournament-engine/repositories"
	"github.com/bracketline/tournament-engine/services"
)

// PlayHandler covers the in-tournament surface: registration, matches,
// results and standings.
type PlayHandler struct {
	service *services.TournamentService
	engine  *services.MatchEngine
}

func NewPlayHandler(service *services.TournamentService, engine *services.MatchEngine) *PlayHandler {
	return &PlayHandler{service: service, engine: engine}
}

func (h *PlayHandler) tournament(w http.ResponseWriter, r *http.Request) (*models.Tournament, bool) {
	tournament, err := h.service.Get(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return nil, false
	}
	return tournament, true
}

type registerTeamRequest struct {
	TeamID  string `json:"team_id"`
	Name    string `json:"name"`
	Captain string `json:"captain"`
}

func (h *PlayHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	var req registerTeamRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	team, err := h.engine.RegisterTeam(r.Context(), chi.URLParam(r, "tournamentID"), req.TeamID, req.Name, req.Captain)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil)
}

func (h *PlayHandler) UnregisterTeam(w http.ResponseWriter, r *http.Request) {
	err := h.engine.UnregisterTeam(r.Context(), chi.URLParam(r, "tournamentID"), chi.URLParam(r, "teamID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "team unregistered"}, nil)
}

// ListTeams returns entrants, fuzzy-filtered by the q query parameter.
func (h *PlayHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	tournament, ok := h.tournament(w, r)
	if !ok {
		return
	}

	teams, err := h.engine.FindTeams(r.Context(), tournament.ID, r.URL.Query().Get("q"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil)
}

func (h *PlayHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	tournament, ok := h.tournament(w, r)
	if !ok {
		return
	}

	filter := repositories.MatchFilter{}
	if s := r.URL.Query().Get("round"); s != "" {
		round, err := strconv.Atoi(s)
		if err != nil {
			badRequestResponse(w, fmt.Errorf("invalid round parameter %q", s))
			return
		}
		filter.Round = &round
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := models.MatchStatus(s)
		filter.Status = &status
	}
	if s := r.URL.Query().Get("stage"); s != "" {
		stage := models.MatchStage(s)
		filter.Stage = &stage
	}

	matches, err := h.engine.Matches(r.Context(), tournament.ID, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"matches": matches, "current_round": tournament.CurrentRound}, nil)
}

type recordResultRequest struct {
	WinnerID   *string `json:"winner_id"`
	IsDraw     bool    `json:"is_draw"`
	Team1Score *int    `json:"team1_score"`
	Team2Score *int    `json:"team2_score"`
}

func (h *PlayHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var req recordResultRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.service.RecordResult(r.Context(),
		chi.URLParam(r, "tournamentID"),
		chi.URLParam(r, "matchID"),
		services.MatchResult{
			WinnerID:   req.WinnerID,
			IsDraw:     req.IsDraw,
			Team1Score: req.Team1Score,
			Team2Score: req.Team2Score,
		})
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	message := fmt.Sprintf("match %s ended in a draw", match.MatchID)
	if match.WinnerID != nil {
		message = fmt.Sprintf("match %s won by %s", match.MatchID, *match.WinnerID)
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": message, "match": match}, nil)
}

func (h *PlayHandler) AbandonMatch(w http.ResponseWriter, r *http.Request) {
	match, err := h.service.AbandonMatch(r.Context(),
		chi.URLParam(r, "tournamentID"),
		chi.URLParam(r, "matchID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": fmt.Sprintf("match %s abandoned", match.MatchID), "match": match}, nil)
}

func (h *PlayHandler) Standings(w http.ResponseWriter, r *http.Request) {
	tournament, ok := h.tournament(w, r)
	if !ok {
		return
	}

	if tournament.NumGroups > 0 {
		groups, err := h.engine.GroupStandings(r.Context(), tournament.ID)
		if err != nil {
			mapServiceErrorToHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil)
		return
	}

	table, err := h.engine.Standings(r.Context(), tournament.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"standings": table}, nil)
}

func (h *PlayHandler) TeamEloHistory(w http.ResponseWriter, r *http.Request) {
	tournament, ok := h.tournament(w, r)
	if !ok {
		return
	}

	history, err := h.engine.TeamEloHistory(r.Context(), tournament.ID, chi.URLParam(r, "teamID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"elo_history": history}, nil)
}
