package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if os.Getenv("ADMIN_CODE") == "" {
		log.Warn().Msg("ADMIN_CODE is not set, admin endpoints are disabled")
	}

	database, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup database")
	}
	defer database.Close()

	services := setupServices(database)
	server := setupServer(services, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Sweeper.Enabled {
		sw := newSweeper(services, cfg)
		go func() {
			if err := sw.Run(ctx); err != nil {
				log.Error().Err(err).Msg("sweeper failed")
			}
		}()
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("API server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	cancel()

	log.Info().Msg("shutdown complete")
}
