package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mcdev12/courtside/go/internal/engine"
	"github.com/mcdev12/courtside/go/internal/identity"
	"github.com/mcdev12/courtside/go/internal/models"
	"github.com/rs/zerolog/log"
)

const maxRequestBodyBytes = 1 << 16

// SessionAPI defines what the gateway needs from the session
type SessionAPI interface {
	State() engine.State
	Login(username, password string) error
	Register(username, password string) error
	Logout()
	Place(gameID int64, side models.Side) bool
	Reconcile() engine.ReconcileResult
	Refresh(ctx context.Context) bool
	Subscribe(fn engine.Listener) func()
}

// CredentialsRequest is the body of login and register calls
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PredictionRequest is the body of a place-prediction call
type PredictionRequest struct {
	GameID int64       `json:"game_id"`
	Side   models.Side `json:"side"`
}

// PredictionResponse reports whether a pick was accepted
type PredictionResponse struct {
	Accepted bool         `json:"accepted"`
	State    engine.State `json:"state"`
}

// ReconcileResponse carries the outcome of a check-results call
type ReconcileResponse struct {
	Result engine.ReconcileResult `json:"result"`
	State  engine.State           `json:"state"`
}

// RefreshResponse reports whether a fetch was performed
type RefreshResponse struct {
	Started bool         `json:"started"`
	State   engine.State `json:"state"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// APIHandler forwards presentation intents to the session
type APIHandler struct {
	session SessionAPI
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(session SessionAPI) *APIHandler {
	return &APIHandler{
		session: session,
	}
}

// RegisterRoutes registers the JSON API routes
func (h *APIHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/state", h.HandleGetState).Methods(http.MethodGet)
	router.HandleFunc("/api/login", h.HandleLogin).Methods(http.MethodPost)
	router.HandleFunc("/api/register", h.HandleRegister).Methods(http.MethodPost)
	router.HandleFunc("/api/logout", h.HandleLogout).Methods(http.MethodPost)
	router.HandleFunc("/api/predictions", h.HandlePlacePrediction).Methods(http.MethodPost)
	router.HandleFunc("/api/reconcile", h.HandleReconcile).Methods(http.MethodPost)
	router.HandleFunc("/api/refresh", h.HandleRefresh).Methods(http.MethodPost)
}

// HandleGetState handles GET /api/state
func (h *APIHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.State())
}

// HandleLogin handles POST /api/login
func (h *APIHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.session.Login(req.Username, req.Password); err != nil {
		writeIdentityError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.session.State())
}

// HandleRegister handles POST /api/register
func (h *APIHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.session.Register(req.Username, req.Password); err != nil {
		writeIdentityError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.session.State())
}

// HandleLogout handles POST /api/logout
func (h *APIHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout()
	writeJSON(w, http.StatusOK, h.session.State())
}

// HandlePlacePrediction handles POST /api/predictions
func (h *APIHandler) HandlePlacePrediction(w http.ResponseWriter, r *http.Request) {
	var req PredictionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	accepted := h.session.Place(req.GameID, req.Side)
	writeJSON(w, http.StatusOK, PredictionResponse{
		Accepted: accepted,
		State:    h.session.State(),
	})
}

// HandleReconcile handles POST /api/reconcile
func (h *APIHandler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	result := h.session.Reconcile()
	writeJSON(w, http.StatusOK, ReconcileResponse{
		Result: result,
		State:  h.session.State(),
	})
}

// HandleRefresh handles POST /api/refresh
func (h *APIHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	started := h.session.Refresh(r.Context())

	status := http.StatusOK
	if !started {
		status = http.StatusAccepted
	}
	writeJSON(w, status, RefreshResponse{
		Started: started,
		State:   h.session.State(),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func writeIdentityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: identity.ErrInvalidCredentials.Error()})
	case errors.Is(err, identity.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: identity.ErrUsernameTaken.Error()})
	case errors.Is(err, identity.ErrInvalidRegistration):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: identity.ErrInvalidRegistration.Error()})
	default:
		log.Error().Err(err).Msg("identity request failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
