package events

import (
	"time"

	"github.com/mcdev12/courtside/go/internal/models"
)

// EventType represents the type of session event
type EventType string

const (
	EventTypeSessionStarted        EventType = "SessionStarted"
	EventTypeSessionEnded          EventType = "SessionEnded"
	EventTypePredictionPlaced      EventType = "PredictionPlaced"
	EventTypePredictionsReconciled EventType = "PredictionsReconciled"
	EventTypeGamesRefreshed        EventType = "GamesRefreshed"
)

// SessionStartedPayload is the payload for a SessionStarted event
type SessionStartedPayload struct {
	Registered bool             `json:"registered"`
	Stats      models.UserStats `json:"stats"`
	StartedAt  time.Time        `json:"started_at"`
}

// SessionEndedPayload is the payload for a SessionEnded event
type SessionEndedPayload struct {
	Stats   models.UserStats `json:"stats"`
	EndedAt time.Time        `json:"ended_at"`
}

// PredictionPlacedPayload is the payload for a PredictionPlaced event
type PredictionPlacedPayload struct {
	GameID   int64       `json:"game_id"`
	Side     models.Side `json:"side"`
	PlacedAt time.Time   `json:"placed_at"`
}

// ResolutionPayload describes one retired prediction
type ResolutionPayload struct {
	GameID    int64       `json:"game_id"`
	Predicted models.Side `json:"predicted"`
	Outcome   string      `json:"outcome"`
	Points    int         `json:"points"`
}

// PredictionsReconciledPayload is the payload for a PredictionsReconciled event
type PredictionsReconciledPayload struct {
	PointsDelta  int                 `json:"points_delta"`
	Correct      int                 `json:"correct"`
	Total        int                 `json:"total"`
	Voided       int                 `json:"voided"`
	Resolutions  []ResolutionPayload `json:"resolutions"`
	Stats        models.UserStats    `json:"stats"`
	ReconciledAt time.Time           `json:"reconciled_at"`
}

// GamesRefreshedPayload is the payload for a GamesRefreshed event
type GamesRefreshedPayload struct {
	Source    string    `json:"source"`
	Games     int       `json:"games"`
	FetchedAt time.Time `json:"fetched_at"`
}
