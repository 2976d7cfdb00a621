package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/bracketline/tournament-engine/events"
	"github.com/bracketline/tournament-engine/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the configured CORS origins once the frontend
		// domains are settled.
		return true
	},
}

// WebSocketHandler subscribes clients to a tournament's live event stream.
type WebSocketHandler struct {
	hub     *events.Hub
	service *services.TournamentService
}

func NewWebSocketHandler(hub *events.Hub, service *services.TournamentService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, service: service}
}

// ServeWs upgrades the connection and joins the client to the tournament's
// room. The room id is the tournament's public id, matching the event
// publisher.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		http.Error(w, "missing tournament id", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Get(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("failed to upgrade websocket connection",
			slog.String("tournament", tournamentID),
			slog.Any("error", err))
		return
	}

	client := &events.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: tournamentID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
