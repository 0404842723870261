package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(services *Services, cfg *Config) *http.Server {
	mux := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	registerServices(mux, services)
	setupHealthCheck(mux)

	handler := c.Handler(mux)

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", getEnv("PORT", cfg.Server.Port)),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	services.Auction.RegisterRoutes(mux)
	services.Teams.RegisterRoutes(mux)
	services.Players.RegisterRoutes(mux)
	services.Settings.RegisterRoutes(mux)
	services.QuietHours.RegisterRoutes(mux)
	services.Drafts.RegisterRoutes(mux)
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
