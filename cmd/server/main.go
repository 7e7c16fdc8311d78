package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Portfolio-Tracker/internal/api"
	"github.com/ndewijer/Portfolio-Tracker/internal/config"
	"github.com/ndewijer/Portfolio-Tracker/internal/database"
	"github.com/ndewijer/Portfolio-Tracker/internal/holdings"
	"github.com/ndewijer/Portfolio-Tracker/internal/logging"
	"github.com/ndewijer/Portfolio-Tracker/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker/internal/scheduler"
	"github.com/ndewijer/Portfolio-Tracker/internal/service"
	"github.com/ndewijer/Portfolio-Tracker/internal/version"
	"github.com/ndewijer/Portfolio-Tracker/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Init("portfolio-tracker", "info", false)
		logging.Logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init("portfolio-tracker", cfg.Log.Level, cfg.Log.Pretty)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logging.Logger.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("failed to open database")
	}
	defer db.Close()

	logging.Info().Str("path", cfg.Database.Path).Str("version", version.Version).Msg("connected to database")

	// Create services
	store := repository.NewTableRepository(db)
	trackerService := service.NewTrackerService(
		holdings.NewCSVSource(cfg.Tracker.HoldingsPath),
		yahoo.NewMarketData(yahoo.NewFinanceClient()),
		store,
		cfg.Analytics,
	)
	systemService := service.NewSystemService(db)

	// Create router
	router := api.NewRouter(systemService, trackerService, cfg)

	// Create HTTP server. Runs fetch every holding from Yahoo, so writes get a long timeout.
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	var sched *scheduler.Scheduler
	if cfg.Tracker.Schedule != "" {
		sched, err = scheduler.New(cfg.Tracker.Schedule, trackerService)
		if err != nil {
			logging.Logger.Fatal().Err(err).Msg("failed to create tracker schedule")
		}
		sched.Start()
	}

	// Start server in a goroutine
	go func() {
		logging.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(ctx); err != nil {
			logging.Warn().Err(err).Msg("scheduled run still in progress at shutdown")
		}
	}

	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logging.Info().Msg("server exited")
}
