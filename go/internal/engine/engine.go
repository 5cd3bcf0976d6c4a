package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mcdev12/courtside/go/internal/models"
	"github.com/rs/zerolog/log"
)

// IdentityApp defines what the engine needs from the identity store
type IdentityApp interface {
	Authenticate(username, password string) (models.UserStats, error)
	Register(username, password string) (models.UserStats, error)
	Save(username string, stats models.UserStats) error
}

// Listener is called with the new state after every mutation.
// Listeners run while the engine is locked and must not call back into it.
type Listener func(State)

// Engine holds the open predictions and the active identity's running stats.
// Every operation runs to completion under a single lock.
type Engine struct {
	mu sync.Mutex

	identities  IdentityApp
	snapshot    Snapshot
	predictions map[int64]models.Side
	stats       models.UserStats
	active      string
	version     uint64

	listeners    map[int]Listener
	nextListener int
}

// New creates an engine with no active identity and an empty board
func New(identities IdentityApp) *Engine {
	return &Engine{
		identities:  identities,
		predictions: make(map[int64]models.Side),
		stats:       models.BaselineStats(),
		listeners:   make(map[int]Listener),
	}
}

// Subscribe registers fn for state changes and returns a function that removes it
func (e *Engine) Subscribe(fn Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextListener
	e.nextListener++
	e.listeners[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// State returns a copy of the current engine state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// SetGames replaces the feed snapshot predictions are validated and reconciled against
func (e *Engine) SetGames(snapshot Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	games := make([]models.Game, len(snapshot.Games))
	copy(games, snapshot.Games)
	snapshot.Games = games
	e.snapshot = snapshot

	e.notifyLocked()
}

// Place records a pick for a game that is still open. It reports whether the
// pick was accepted; rejected picks leave the engine untouched.
func (e *Engine) Place(gameID int64, side models.Side) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == "" || !side.Valid() {
		return false
	}

	game, ok := e.findGameLocked(gameID)
	if !ok || !game.IsOpen() {
		log.Debug().
			Int64("game_id", gameID).
			Str("side", string(side)).
			Msg("ignoring prediction for game that is not open")
		return false
	}

	e.predictions[gameID] = side
	e.notifyLocked()
	return true
}

// Reconcile resolves every prediction whose game is final against the current
// snapshot, applies the point changes and retires the resolved predictions.
func (e *Engine) Reconcile() ReconcileResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := ReconcileResult{Resolutions: []Resolution{}}

	games := make(map[int64]models.Game, len(e.snapshot.Games))
	for _, g := range e.snapshot.Games {
		games[g.ID] = g
	}

	for _, gameID := range e.sortedPredictionIDsLocked() {
		game, ok := games[gameID]
		if !ok || game.Status != models.GameStatusFinal {
			continue
		}

		resolution := resolve(game, e.predictions[gameID])
		switch resolution.Outcome {
		case OutcomeCorrect:
			result.Correct++
			result.Total++
		case OutcomeIncorrect:
			result.Total++
		case OutcomeVoid:
			result.Voided++
		}
		result.PointsDelta += resolution.Points
		result.Resolutions = append(result.Resolutions, resolution)
		log.Debug().Str("identity", e.active).Msg(resolution.String())

		delete(e.predictions, gameID)
	}

	if result.Total > 0 {
		e.stats.Points += result.PointsDelta
		e.stats.Correct += result.Correct
		e.stats.Total += result.Total

		if err := e.identities.Save(e.active, e.stats); err != nil {
			log.Error().Err(err).Str("identity", e.active).Msg("failed to write back stats")
		}
	}
	result.Stats = e.stats

	if result.Changed() {
		log.Info().
			Str("identity", e.active).
			Int("points_delta", result.PointsDelta).
			Int("correct", result.Correct).
			Int("total", result.Total).
			Int("voided", result.Voided).
			Msg("reconciled predictions")
		e.notifyLocked()
	}

	return result
}

// Login adopts the stored stats of username when the password matches
func (e *Engine) Login(username, password string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats, err := e.identities.Authenticate(username, password)
	if err != nil {
		return err
	}

	e.activateLocked(username, stats)
	return nil
}

// Register creates a new identity and makes it the active one
func (e *Engine) Register(username, password string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats, err := e.identities.Register(username, password)
	if err != nil {
		return err
	}

	e.activateLocked(username, stats)
	return nil
}

// Logout writes the working stats back, then clears the identity, the pending
// predictions and the displayed stats.
func (e *Engine) Logout() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.releaseLocked()
	e.notifyLocked()
}

func (e *Engine) activateLocked(username string, stats models.UserStats) {
	if e.active != "" {
		e.releaseLocked()
	}

	e.active = username
	e.stats = stats
	e.predictions = make(map[int64]models.Side)

	log.Info().Str("identity", username).Int("points", stats.Points).Msg("identity active")
	e.notifyLocked()
}

func (e *Engine) releaseLocked() {
	if e.active != "" {
		if err := e.identities.Save(e.active, e.stats); err != nil {
			log.Error().Err(err).Str("identity", e.active).Msg("failed to write back stats")
		}
		log.Info().Str("identity", e.active).Msg("identity released")
	}

	e.active = ""
	e.stats = models.BaselineStats()
	e.predictions = make(map[int64]models.Side)
}

func (e *Engine) findGameLocked(gameID int64) (models.Game, bool) {
	for _, g := range e.snapshot.Games {
		if g.ID == gameID {
			return g, true
		}
	}
	return models.Game{}, false
}

func (e *Engine) sortedPredictionIDsLocked() []int64 {
	ids := make([]int64, 0, len(e.predictions))
	for id := range e.predictions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (e *Engine) stateLocked() State {
	predictions := make(map[int64]models.Side, len(e.predictions))
	for id, side := range e.predictions {
		predictions[id] = side
	}

	games := make([]models.Game, len(e.snapshot.Games))
	copy(games, e.snapshot.Games)

	return State{
		Version:     e.version,
		Identity:    e.active,
		LoggedIn:    e.active != "",
		Stats:       e.stats,
		Accuracy:    e.stats.Accuracy(),
		Predictions: predictions,
		Games:       games,
		Source:      e.snapshot.Source,
		FetchedAt:   e.snapshot.FetchedAt,
	}
}

func (e *Engine) notifyLocked() {
	e.version++
	if len(e.listeners) == 0 {
		return
	}
	state := e.stateLocked()
	for _, fn := range e.listeners {
		fn(state)
	}
}

// resolve scores a single prediction against a final game
func resolve(game models.Game, predicted models.Side) Resolution {
	resolution := Resolution{GameID: game.ID, Predicted: predicted}

	switch {
	case game.HomeScore > game.VisitorScore:
		resolution.Winner = models.SideHome
	case game.VisitorScore > game.HomeScore:
		resolution.Winner = models.SideAway
	default:
		resolution.Outcome = OutcomeVoid
		return resolution
	}

	if resolution.Winner == predicted {
		resolution.Outcome = OutcomeCorrect
		resolution.Points = PointsCorrect
	} else {
		resolution.Outcome = OutcomeIncorrect
		resolution.Points = PointsIncorrect
	}
	return resolution
}

func (r Resolution) String() string {
	return fmt.Sprintf("game %d: picked %s, %s (%+d)", r.GameID, r.Predicted, r.Outcome, r.Points)
}
