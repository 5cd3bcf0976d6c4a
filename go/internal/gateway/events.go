package gateway

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/courtside/go/internal/engine"
)

// StreamEvent is the frame sent to WebSocket clients
type StreamEvent struct {
	ID        string          `json:"id"`        // Event UUID
	Type      EventType       `json:"type"`      // Event type
	Timestamp time.Time       `json:"timestamp"` // Event creation time
	Version   uint64          `json:"version"`   // Engine state version
	Data      json.RawMessage `json:"data"`      // Event-specific payload
}

// EventType represents the type of stream event
type EventType string

const (
	// EventTypeStateSync is sent once when a client connects
	EventTypeStateSync EventType = "StateSync"
	// EventTypeStateChanged is sent after every engine mutation
	EventTypeStateChanged EventType = "StateChanged"
)

// NewStateEvent wraps an engine state in a stream event
func NewStateEvent(eventType EventType, state engine.State, now time.Time) (*StreamEvent, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return &StreamEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: now,
		Version:   state.Version,
		Data:      data,
	}, nil
}
