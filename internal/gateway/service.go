package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service bundles the connection manager, WebSocket handler and JetStream
// consumer into one unit the gateway binary can start and stop.
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	eventConsumer     *EventConsumer
}

// Config holds configuration for the gateway service.
type Config struct {
	ConnectionConfig ConnectionConfig
	ConsumerConfig   ConsumerConfig
}

// DefaultConfig returns the default gateway configuration.
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		ConsumerConfig:   DefaultConsumerConfig(),
	}
}

// NewService creates a gateway service and its JetStream consumer.
func NewService(config Config) (*Service, error) {
	cm := NewConnectionManager(config.ConnectionConfig)
	wsHandler := NewWebSocketHandler(cm)

	eventConsumer, err := NewEventConsumer(cm, config.ConsumerConfig)
	if err != nil {
		return nil, fmt.Errorf("create event consumer: %w", err)
	}

	return &Service{
		connectionManager: cm,
		wsHandler:         wsHandler,
		eventConsumer:     eventConsumer,
	}, nil
}

// Start runs the broadcast loop and the event consumer until ctx is
// cancelled.
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting gateway service")

	go s.connectionManager.Start(ctx)

	go func() {
		if err := s.eventConsumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer failed")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("gateway service shutting down")
	return s.Stop()
}

// Stop shuts down the event consumer.
func (s *Service) Stop() error {
	if err := s.eventConsumer.Stop(); err != nil {
		log.Error().Err(err).Msg("failed to stop event consumer")
	}
	log.Info().Msg("gateway service stopped")
	return nil
}

// RegisterRoutes registers the WebSocket routes on the mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
}

// Stats reports connection statistics.
func (s *Service) Stats() map[string]interface{} {
	return s.connectionManager.Stats()
}

// BroadcastEvent pushes an event to a draft room directly, bypassing
// JetStream. Used in tests.
func (s *Service) BroadcastEvent(draftID uuid.UUID, event *RoomEvent) {
	s.connectionManager.BroadcastToDraft(draftID, event)
}
