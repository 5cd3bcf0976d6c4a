package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/courtside/go/internal/engine"
	"github.com/mcdev12/courtside/go/internal/feed"
	"github.com/rs/zerolog/log"
)

// DefaultPollInterval is how often the board is refreshed while a session is active
const DefaultPollInterval = 10 * time.Minute

// Fetcher defines what the refresher needs from the game feed
type Fetcher interface {
	Fetch(ctx context.Context) feed.Result
}

// GameSink receives each fetched snapshot
type GameSink interface {
	SetGames(snapshot engine.Snapshot)
}

// Refresher pulls the game feed on a fixed interval and on demand.
// At most one fetch is in flight at any time.
type Refresher struct {
	fetcher  Fetcher
	sink     GameSink
	clock    clockwork.Clock
	interval time.Duration

	inFlight  atomic.Bool
	onRefresh func(feed.Result)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher creates a refresher that is not yet polling
func NewRefresher(fetcher Fetcher, sink GameSink, clock clockwork.Clock, interval time.Duration) *Refresher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Refresher{
		fetcher:  fetcher,
		sink:     sink,
		clock:    clock,
		interval: interval,
	}
}

// OnRefresh sets a hook called after each applied snapshot. Set it before Start.
func (r *Refresher) OnRefresh(fn func(feed.Result)) {
	r.onRefresh = fn
}

// Refresh fetches the feed and applies the result. It returns false without
// fetching when another fetch is still pending.
func (r *Refresher) Refresh(ctx context.Context) bool {
	if !r.inFlight.CompareAndSwap(false, true) {
		log.Debug().Msg("refresh already in flight, skipping")
		return false
	}
	defer r.inFlight.Store(false)

	result := r.fetcher.Fetch(ctx)
	if ctx.Err() != nil {
		log.Debug().Err(ctx.Err()).Msg("refresh cancelled, discarding result")
		return true
	}

	r.sink.SetGames(engine.Snapshot{
		Games:     result.Games,
		Source:    result.Source,
		FetchedAt: result.FetchedAt,
	})

	log.Info().
		Str("source", string(result.Source)).
		Int("games", len(result.Games)).
		Msg("games refreshed")

	if r.onRefresh != nil {
		r.onRefresh(result)
	}
	return true
}

// Running reports whether the polling loop is active
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// Start fetches immediately and then on every tick until Stop is called or ctx
// ends. It returns false if polling was already running.
func (r *Refresher) Start(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return false
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	ticker := r.clock.NewTicker(r.interval)
	go r.run(loopCtx, ticker, r.done)

	log.Info().Dur("interval", r.interval).Msg("game polling started")
	return true
}

// Stop tears the ticker down and waits for the polling loop to exit
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	log.Info().Msg("game polling stopped")
}

func (r *Refresher) run(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	r.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			r.Refresh(ctx)
		}
	}
}
