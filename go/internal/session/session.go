package session

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/courtside/go/internal/engine"
	"github.com/mcdev12/courtside/go/internal/events"
	"github.com/mcdev12/courtside/go/internal/feed"
	"github.com/mcdev12/courtside/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Session ties the engine to the feed poller and the event bus. Polling runs
// only while an identity is active.
type Session struct {
	ctx       context.Context
	engine    *engine.Engine
	refresher *Refresher
	publisher events.Publisher
	clock     clockwork.Clock
}

// New creates a session; ctx bounds the lifetime of the polling loop
func New(ctx context.Context, eng *engine.Engine, refresher *Refresher, publisher events.Publisher, clock clockwork.Clock) *Session {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &Session{
		ctx:       ctx,
		engine:    eng,
		refresher: refresher,
		publisher: publisher,
		clock:     clock,
	}
	refresher.OnRefresh(s.gamesRefreshed)
	return s
}

// State returns the engine state
func (s *Session) State() engine.State {
	return s.engine.State()
}

// Subscribe registers fn for engine state changes
func (s *Session) Subscribe(fn engine.Listener) func() {
	return s.engine.Subscribe(fn)
}

// Login activates an existing identity and starts polling
func (s *Session) Login(username, password string) error {
	previous := s.engine.State()
	if err := s.engine.Login(username, password); err != nil {
		log.Info().Str("username", username).Msg("login rejected")
		return err
	}
	s.ended(previous)
	s.started(username, false)
	return nil
}

// Register creates an identity, activates it and starts polling
func (s *Session) Register(username, password string) error {
	previous := s.engine.State()
	if err := s.engine.Register(username, password); err != nil {
		log.Info().Err(err).Str("username", username).Msg("registration rejected")
		return err
	}
	s.ended(previous)
	s.started(username, true)
	return nil
}

// Logout stops polling, then resets the engine
func (s *Session) Logout() {
	state := s.engine.State()

	s.refresher.Stop()
	s.engine.Logout()
	s.ended(state)
}

// Place forwards a pick to the engine
func (s *Session) Place(gameID int64, side models.Side) bool {
	if !s.engine.Place(gameID, side) {
		return false
	}
	s.publish(events.EventTypePredictionPlaced, s.engine.State().Identity, events.PredictionPlacedPayload{
		GameID:   gameID,
		Side:     side,
		PlacedAt: s.clock.Now(),
	})
	return true
}

// Reconcile resolves final games against the last fetched board
func (s *Session) Reconcile() engine.ReconcileResult {
	result := s.engine.Reconcile()
	if !result.Changed() {
		return result
	}

	resolutions := make([]events.ResolutionPayload, 0, len(result.Resolutions))
	for _, r := range result.Resolutions {
		resolutions = append(resolutions, events.ResolutionPayload{
			GameID:    r.GameID,
			Predicted: r.Predicted,
			Outcome:   string(r.Outcome),
			Points:    r.Points,
		})
	}
	s.publish(events.EventTypePredictionsReconciled, s.engine.State().Identity, events.PredictionsReconciledPayload{
		PointsDelta:  result.PointsDelta,
		Correct:      result.Correct,
		Total:        result.Total,
		Voided:       result.Voided,
		Resolutions:  resolutions,
		Stats:        result.Stats,
		ReconciledAt: s.clock.Now(),
	})
	return result
}

// Refresh fetches the board now; false means a fetch was already pending
func (s *Session) Refresh(ctx context.Context) bool {
	return s.refresher.Refresh(ctx)
}

// Polling reports whether the background refresh loop is running
func (s *Session) Polling() bool {
	return s.refresher.Running()
}

// Close stops polling
func (s *Session) Close() {
	s.refresher.Stop()
}

func (s *Session) started(username string, registered bool) {
	s.refresher.Start(s.ctx)
	s.publish(events.EventTypeSessionStarted, username, events.SessionStartedPayload{
		Registered: registered,
		Stats:      s.engine.State().Stats,
		StartedAt:  s.clock.Now(),
	})
}

// ended publishes SessionEnded for the identity active in previous, if any
func (s *Session) ended(previous engine.State) {
	if !previous.LoggedIn {
		return
	}
	s.publish(events.EventTypeSessionEnded, previous.Identity, events.SessionEndedPayload{
		Stats:   previous.Stats,
		EndedAt: s.clock.Now(),
	})
}

func (s *Session) gamesRefreshed(result feed.Result) {
	s.publish(events.EventTypeGamesRefreshed, s.engine.State().Identity, events.GamesRefreshedPayload{
		Source:    string(result.Source),
		Games:     len(result.Games),
		FetchedAt: result.FetchedAt,
	})
}

func (s *Session) publish(eventType events.EventType, identity string, payload interface{}) {
	env, err := events.NewEnvelope(eventType, identity, payload, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to build event")
		return
	}
	if err := s.publisher.Publish(s.ctx, env); err != nil {
		log.Warn().Err(err).Str("event_type", string(eventType)).Msg("failed to publish event")
	}
}
