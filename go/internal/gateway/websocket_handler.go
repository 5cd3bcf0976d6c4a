package gateway

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket upgrade requests for the state stream
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	session           SessionAPI
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cm *ConnectionManager, session SessionAPI) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		session:           session,
	}
}

// HandleStateConnection upgrades the request and streams engine state to it
func (h *WebSocketHandler) HandleStateConnection(w http.ResponseWriter, r *http.Request) {
	snapshot := func() (*StreamEvent, error) {
		return NewStateEvent(EventTypeStateSync, h.session.State(), time.Now())
	}

	// The upgrader has already written an HTTP error on failure
	if err := h.connectionManager.UpgradeConnection(w, r, snapshot); err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"total_connections": h.connectionManager.ConnectionCount(),
	})
}

// RegisterRoutes registers WebSocket routes with the router
func (h *WebSocketHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ws/state", h.HandleStateConnection).Methods(http.MethodGet)
	router.HandleFunc("/ws/stats", h.HandleConnectionStats).Methods(http.MethodGet)
}
