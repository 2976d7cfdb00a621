package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bracketline/tournament-engine/config"
	"github.com/bracketline/tournament-engine/db"
	"github.com/bracketline/tournament-engine/elo"
	"github.com/bracketline/tournament-engine/events"
	"github.com/bracketline/tournament-engine/handlers"
	"github.com/bracketline/tournament-engine/repositories"
	api "github.com/bracketline/tournament-engine/routes"
	"github.com/bracketline/tournament-engine/services"
	"github.com/bracketline/tournament-engine/storage"
	"github.com/bracketline/tournament-engine/workers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	var (
		tournamentRepo repositories.TournamentRepository
		teamRepo       repositories.TeamRepository
		matchRepo      repositories.MatchRepository
		eloHistoryRepo repositories.EloHistoryRepository
	)

	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			logger.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			}
		}()
		logger.Info("database connection established")

		tournamentRepo = repositories.NewPostgresTournamentRepository(dbConn)
		teamRepo = repositories.NewPostgresTeamRepository(dbConn)
		matchRepo = repositories.NewPostgresMatchRepository(dbConn)
		eloHistoryRepo = repositories.NewPostgresEloHistoryRepository(dbConn)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store; state is lost on restart")
		store := repositories.NewMemoryStore()
		tournamentRepo = store.Tournaments()
		teamRepo = store.TeamsRepo()
		matchRepo = store.MatchesRepo()
		eloHistoryRepo = store.EloHistoryRepo()
	}

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("archive storage initialized")
	} else {
		logger.Info("archive storage not configured, snapshot export disabled")
	}

	hub := events.NewHub()
	go hub.Run()
	logger.Info("event hub started")

	calc := elo.NewCalculator(cfg.EloKFactor)
	engine := services.NewMatchEngine(tournamentRepo, teamRepo, matchRepo, eloHistoryRepo, calc, hub, logger)

	var archiver services.Archiver
	if uploader != nil {
		archiver = services.NewArchiveService(teamRepo, matchRepo, eloHistoryRepo, uploader, logger)
	}

	tournamentService := services.NewTournamentService(tournamentRepo, engine, archiver, hub, logger)
	logger.Info("services initialized")

	worker := workers.NewAutoAdvanceWorker(tournamentService, engine, tournamentRepo, cfg.SweepInterval, cfg.RoundDuration, logger)
	if err := worker.Start(); err != nil {
		logger.Error("failed to start background worker", slog.Any("error", err))
		os.Exit(1)
	}
	defer worker.Stop()
	logger.Info("background worker started",
		slog.Duration("sweep_interval", cfg.SweepInterval),
		slog.Duration("round_duration", cfg.RoundDuration))

	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	playHandler := handlers.NewPlayHandler(tournamentService, engine)
	wsHandler := handlers.NewWebSocketHandler(hub, tournamentService)

	router := api.InitRoutes(api.Config{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, tournamentHandler, playHandler, wsHandler)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
