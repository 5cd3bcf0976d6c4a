package feed

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Result is one completed fetch
type Result struct {
	Games     []models.Game
	Source    clients.ExternalSource
	FetchedAt time.Time
}

// Fetcher tries the configured providers in order and falls back to the
// static board when none of them returns games. It never fails.
type Fetcher struct {
	providers []Provider
	fallback  Provider
	clock     clockwork.Clock
	location  *time.Location
}

// NewFetcher creates a fetcher over providers; location decides what "today" is
func NewFetcher(providers []Provider, clock clockwork.Clock, location *time.Location) *Fetcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.UTC
	}
	return &Fetcher{
		providers: providers,
		fallback:  FallbackProvider{},
		clock:     clock,
		location:  location,
	}
}

// Today returns the current calendar day in the fetcher's time zone
func (f *Fetcher) Today() time.Time {
	now := f.clock.Now().In(f.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, f.location)
}

// Fetch returns today's games from the first provider that has any
func (f *Fetcher) Fetch(ctx context.Context) Result {
	return f.FetchDate(ctx, f.Today())
}

// FetchDate returns the games for date from the first provider that has any
func (f *Fetcher) FetchDate(ctx context.Context, date time.Time) Result {
	for _, provider := range f.providers {
		games, err := provider.FetchGames(ctx, date)
		if err != nil {
			log.Warn().
				Err(err).
				Str("source", string(provider.Source())).
				Str("date", date.Format("2006-01-02")).
				Msg("feed fetch failed, trying next source")
			continue
		}
		if len(games) == 0 {
			log.Info().
				Str("source", string(provider.Source())).
				Str("date", date.Format("2006-01-02")).
				Msg("feed returned no games")
			continue
		}
		return Result{Games: games, Source: provider.Source(), FetchedAt: f.clock.Now()}
	}

	games, _ := f.fallback.FetchGames(ctx, date)
	log.Info().Int("games", len(games)).Msg("using fallback games")
	return Result{Games: games, Source: f.fallback.Source(), FetchedAt: f.clock.Now()}
}
