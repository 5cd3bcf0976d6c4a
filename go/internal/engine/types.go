package engine

import (
	"time"

	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/internal/models"
)

const (
	// PointsCorrect is awarded for each correct resolved prediction
	PointsCorrect = 100
	// PointsIncorrect is applied for each incorrect resolved prediction
	PointsIncorrect = -50
)

// Snapshot is one feed refresh as seen by the engine
type Snapshot struct {
	Games     []models.Game          `json:"games"`
	Source    clients.ExternalSource `json:"source"`
	FetchedAt time.Time              `json:"fetched_at"`
}

// State is a copy of everything the presentation layer renders from.
// Version increases with every mutation.
type State struct {
	Version     uint64                 `json:"version"`
	Identity    string                 `json:"identity,omitempty"`
	LoggedIn    bool                   `json:"logged_in"`
	Stats       models.UserStats       `json:"stats"`
	Accuracy    float64                `json:"accuracy"`
	Predictions map[int64]models.Side  `json:"predictions"`
	Games       []models.Game          `json:"games"`
	Source      clients.ExternalSource `json:"source,omitempty"`
	FetchedAt   time.Time              `json:"fetched_at"`
}

// Outcome describes how a single prediction was resolved
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	// OutcomeVoid is used for final games that ended level
	OutcomeVoid Outcome = "void"
)

// Resolution records one prediction retired by a reconciliation pass
type Resolution struct {
	GameID    int64       `json:"game_id"`
	Predicted models.Side `json:"predicted"`
	Winner    models.Side `json:"winner,omitempty"`
	Outcome   Outcome     `json:"outcome"`
	Points    int         `json:"points"`
}

// ReconcileResult is the net effect of one reconciliation pass
type ReconcileResult struct {
	PointsDelta int              `json:"points_delta"`
	Correct     int              `json:"correct"`
	Total       int              `json:"total"`
	Voided      int              `json:"voided"`
	Resolutions []Resolution     `json:"resolutions"`
	Stats       models.UserStats `json:"stats"`
}

// Changed reports whether the pass retired any prediction
func (r ReconcileResult) Changed() bool {
	return len(r.Resolutions) > 0
}
