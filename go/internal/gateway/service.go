package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mcdev12/courtside/go/internal/engine"
	"github.com/rs/zerolog/log"
)

// Service is the presentation gateway: JSON intents in, state stream out
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	apiHandler        *APIHandler
	unsubscribe       func()
}

// Config holds configuration for the gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
}

// DefaultConfig returns default configuration for the gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
	}
}

// NewService creates a new gateway service
func NewService(config Config, session SessionAPI) *Service {
	connectionManager := NewConnectionManager(config.ConnectionConfig)

	s := &Service{
		connectionManager: connectionManager,
		wsHandler:         NewWebSocketHandler(connectionManager, session),
		apiHandler:        NewAPIHandler(session),
	}

	// Changes made before Start are buffered by the connection manager
	s.unsubscribe = session.Subscribe(s.stateChanged)
	return s
}

// Start streams state changes to connected clients until ctx is cancelled
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting gateway service")
	defer s.unsubscribe()

	s.connectionManager.Start(ctx)

	log.Info().Msg("gateway service stopped")
	return nil
}

// Router builds the HTTP router with every gateway route registered
func (s *Service) Router() *mux.Router {
	router := mux.NewRouter()
	s.apiHandler.RegisterRoutes(router)
	s.wsHandler.RegisterRoutes(router)
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	log.Info().Msg("gateway routes registered")
	return router
}

// ConnectionCount returns the number of open stream connections
func (s *Service) ConnectionCount() int {
	return s.connectionManager.ConnectionCount()
}

func (s *Service) stateChanged(state engine.State) {
	event, err := NewStateEvent(EventTypeStateChanged, state, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to build state event")
		return
	}
	s.connectionManager.Broadcast(event)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("failed to write health check response")
	}
}
