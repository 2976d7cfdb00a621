package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bracketline/tournament-engine/models"
	"github.com/bracketline/tournament-engine/services"
)

// TournamentHandler exposes the tournament lifecycle over HTTP.
type TournamentHandler struct {
	service *services.TournamentService
}

func NewTournamentHandler(service *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{service: service}
}

type createTournamentRequest struct {
	Name                 string     `json:"name"`
	Format               string     `json:"format"`
	MaxTeams             int        `json:"max_teams"`
	MinTeams             int        `json:"min_teams"`
	NumGroups            int        `json:"num_groups"`
	TeamsPerGroupAdvance int        `json:"teams_per_group_advance"`
	AllowDraws           bool       `json:"allow_draws"`
	ScheduledStart       *time.Time `json:"scheduled_start"`
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	tournament, err := h.service.Create(r.Context(), services.CreateTournamentInput{
		Name:                 req.Name,
		Format:               models.TournamentFormat(req.Format),
		MaxTeams:             req.MaxTeams,
		MinTeams:             req.MinTeams,
		NumGroups:            req.NumGroups,
		TeamsPerGroupAdvance: req.TeamsPerGroupAdvance,
		AllowDraws:           req.AllowDraws,
		ScheduledStart:       req.ScheduledStart,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil)
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.service.Get(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil)
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *models.TournamentStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := models.TournamentStatus(s)
		status = &st
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	tournaments, err := h.service.List(r.Context(), status, limit, offset)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil)
}

type updateTournamentRequest struct {
	Name                 *string    `json:"name"`
	Format               *string    `json:"format"`
	MaxTeams             *int       `json:"max_teams"`
	MinTeams             *int       `json:"min_teams"`
	NumGroups            *int       `json:"num_groups"`
	TeamsPerGroupAdvance *int       `json:"teams_per_group_advance"`
	AllowDraws           *bool      `json:"allow_draws"`
	ScheduledStart       *time.Time `json:"scheduled_start"`
}

func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateTournamentRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	input := services.UpdateTournamentInput{
		Name:                 req.Name,
		MaxTeams:             req.MaxTeams,
		MinTeams:             req.MinTeams,
		NumGroups:            req.NumGroups,
		TeamsPerGroupAdvance: req.TeamsPerGroupAdvance,
		AllowDraws:           req.AllowDraws,
		ScheduledStart:       req.ScheduledStart,
	}
	if req.Format != nil {
		format := models.TournamentFormat(*req.Format)
		input.Format = &format
	}

	tournament, err := h.service.Update(r.Context(), chi.URLParam(r, "tournamentID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil)
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "tournamentID")); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"message": "tournament deleted"}, nil)
}

func (h *TournamentHandler) Publish(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.service.Publish(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil)
}

func (h *TournamentHandler) Start(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.service.Start(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil)
}

func (h *TournamentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.service.Cancel(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil)
}

func (h *TournamentHandler) Advance(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.Advance(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"outcome": outcome}, nil)
}

func (h *TournamentHandler) Archive(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.service.Archive(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil)
}

func (h *TournamentHandler) Winner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.service.Winner(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"winner": winner}, nil)
}

func (h *TournamentHandler) AllowedActions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.service.AllowedActions(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"allowed_actions": actions}, nil)
}
