package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/golfcompete/golf-server/internal/api"
	"github.com/golfcompete/golf-server/internal/auth"
	"github.com/golfcompete/golf-server/internal/auth/session/inmem"
	"github.com/golfcompete/golf-server/internal/config"
	"github.com/golfcompete/golf-server/internal/course"
	"github.com/golfcompete/golf-server/internal/note"
	"github.com/golfcompete/golf-server/internal/round"
	"github.com/golfcompete/golf-server/internal/series"
	"github.com/golfcompete/golf-server/internal/service"
	"github.com/golfcompete/golf-server/internal/store/postgres"
	"github.com/golfcompete/golf-server/internal/task"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Initialize the PostgreSQL store client
	log.Info().Msg("initializing database connection...")
	client := postgres.New(cfg.PostgresDSN)
	if err := client.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the database connection")
	}
	defer client.Close()

	// Create the session storage and schedule a task that terminates expired sessions
	sessionStorage, err := inmem.New()
	if err != nil {
		log.Fatal().Err(err).Msg("could not create the session storage")
	}
	cleanupTask := task.NewRepeating(func() {
		n, err := sessionStorage.TerminateExpired(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("could not terminate expired sessions")
		} else if n > 0 {
			log.Info().Int("amount", n).Msg("terminated expired sessions")
		}
	}, time.Minute)
	cleanupTask.Start()
	defer cleanupTask.Stop(true)

	// Assemble the feature services on top of the shared service base
	base := service.NewBase(client, log.Logger)
	authService := auth.NewService(base, sessionStorage, cfg.SessionLifetime)

	// Start up the HTTP API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the HTTP API...")
	apiService := &api.Service{
		Config:  cfg,
		Auth:    authService,
		Courses: course.NewService(base),
		Rounds:  round.NewService(base),
		Series:  series.NewService(base),
		Notes:   note.NewService(base),
	}
	apiErrs := make(chan error, 1)
	go func() {
		if err := apiService.Startup(); err != nil {
			apiErrs <- err
		}
	}()
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the HTTP API raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the HTTP API...")
		apiService.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
