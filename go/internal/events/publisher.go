package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Envelope wraps every published event
type Envelope struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Identity  string          `json:"identity,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload into a new event envelope
func NewEnvelope(eventType EventType, identity string, payload interface{}, now time.Time) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		ID:        uuid.New().String(),
		Type:      eventType,
		Identity:  identity,
		Timestamp: now,
		Payload:   data,
	}, nil
}

// Publisher delivers events to a message bus
type Publisher interface {
	Publish(ctx context.Context, event Envelope) error
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event Envelope) error { return nil }

// LogPublisher writes events to the log, for development
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, event Envelope) error {
	log.Info().
		Str("event_id", event.ID).
		Str("event_type", string(event.Type)).
		Str("identity", event.Identity).
		RawJSON("payload", event.Payload).
		Msg("publishing event")
	return nil
}

// NATSConfig holds connection settings for the NATS publisher
type NATSConfig struct {
	URL           string        `yaml:"url"`
	SubjectPrefix string        `yaml:"subject_prefix"`
	MaxReconnects int           `yaml:"max_reconnects"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

// DefaultNATSConfig returns default NATS publisher configuration
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "courtside.events",
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// NATSPublisher publishes events on core NATS subjects
type NATSPublisher struct {
	nc            *nats.Conn
	subjectPrefix string
}

// NewNATSPublisher connects to NATS
func NewNATSPublisher(config NATSConfig) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("courtside"),
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &NATSPublisher{nc: nc, subjectPrefix: config.SubjectPrefix}, nil
}

// Subject returns the subject an event type is published on
func Subject(prefix string, eventType EventType) string {
	if prefix == "" {
		return string(eventType)
	}
	return fmt.Sprintf("%s.%s", prefix, eventType)
}

func (p *NATSPublisher) Publish(ctx context.Context, event Envelope) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := Subject(p.subjectPrefix, event.Type)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	log.Debug().
		Str("subject", subject).
		Int("size", len(data)).
		Msg("published event to NATS")
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
