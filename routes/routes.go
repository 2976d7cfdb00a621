package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bracketline/tournament-engine/handlers"
	"github.com/bracketline/tournament-engine/middleware"
)

type Config struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func InitRoutes(
	cfg Config,
	tournamentHandler *handlers.TournamentHandler,
	playHandler *handlers.PlayHandler,
	wsHandler *handlers.WebSocketHandler,
) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		router.Use(limiter.Handler)
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Post("/", tournamentHandler.Create)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.Get)
			r.Put("/", tournamentHandler.Update)
			r.Delete("/", tournamentHandler.Delete)

			r.Post("/publish", tournamentHandler.Publish)
			r.Post("/start", tournamentHandler.Start)
			r.Post("/cancel", tournamentHandler.Cancel)
			r.Post("/advance", tournamentHandler.Advance)
			r.Post("/archive", tournamentHandler.Archive)
			r.Get("/winner", tournamentHandler.Winner)
			r.Get("/actions", tournamentHandler.AllowedActions)

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", playHandler.ListTeams)
				r.Post("/", playHandler.RegisterTeam)
				r.Delete("/{teamID}", playHandler.UnregisterTeam)
				r.Get("/{teamID}/elo-history", playHandler.TeamEloHistory)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", playHandler.ListMatches)
				r.Post("/{matchID}/result", playHandler.RecordResult)
				r.Post("/{matchID}/abandon", playHandler.AbandonMatch)
			})

			r.Get("/standings", playHandler.Standings)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", wsHandler.ServeWs)

	return router
}
