package feed

import (
	"context"
	"time"

	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/internal/models"
)

// FallbackGames returns the fixed board shown when the feed is unavailable.
// It covers each lifecycle status once.
func FallbackGames() []models.Game {
	return []models.Game{
		{
			ID:           1,
			Home:         models.TeamSide{FullName: "Los Angeles Lakers", Abbreviation: "LAL"},
			Visitor:      models.TeamSide{FullName: "Golden State Warriors", Abbreviation: "GSW"},
			Status:       models.GameStatusScheduled,
			Label:        "10:30 PM ET",
			HomeScore:    0,
			VisitorScore: 0,
		},
		{
			ID:           2,
			Home:         models.TeamSide{FullName: "Boston Celtics", Abbreviation: "BOS"},
			Visitor:      models.TeamSide{FullName: "Miami Heat", Abbreviation: "MIA"},
			Status:       models.GameStatusLive,
			Label:        "Q2 8:45",
			HomeScore:    45,
			VisitorScore: 42,
		},
		{
			ID:           3,
			Home:         models.TeamSide{FullName: "Denver Nuggets", Abbreviation: "DEN"},
			Visitor:      models.TeamSide{FullName: "Phoenix Suns", Abbreviation: "PHX"},
			Status:       models.GameStatusFinal,
			Label:        "Final",
			HomeScore:    118,
			VisitorScore: 112,
		},
	}
}

// FallbackProvider serves FallbackGames for any date
type FallbackProvider struct{}

func (FallbackProvider) Init() error { return nil }

func (FallbackProvider) Source() clients.ExternalSource { return clients.ExternalSourceFallback }

func (FallbackProvider) FetchGames(ctx context.Context, date time.Time) ([]models.Game, error) {
	return FallbackGames(), nil
}
