package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mcdev12/courtside/go/clients"
	bdl "github.com/mcdev12/courtside/go/clients/balldontlie_client"
	"github.com/mcdev12/courtside/go/internal/models"
)

// BallDontLieConfig holds balldontlie-specific configuration.
type BallDontLieConfig struct {
	APIBaseURL string        `yaml:"api_base_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
}

// BallDontLieProvider implements Provider for the balldontlie NBA API.
type BallDontLieProvider struct {
	api      *bdl.BallDontLieClient
	config   BallDontLieConfig
	location *time.Location
}

// NewBallDontLieProvider creates the provider; the client is built on Init.
// location is used to render tip-off times.
func NewBallDontLieProvider(config BallDontLieConfig, location *time.Location) *BallDontLieProvider {
	if location == nil {
		location = time.UTC
	}
	return &BallDontLieProvider{config: config, location: location}
}

// Init creates the API client from config.
func (p *BallDontLieProvider) Init() error {
	if p.config.APIKey == "" {
		return fmt.Errorf("balldontlie: api key is required")
	}
	if p.config.APIBaseURL == "" {
		p.api = bdl.NewBallDontLieClient(p.config.APIKey)
	} else {
		p.api = bdl.NewBallDontLieClientWithURL(p.config.APIBaseURL, p.config.APIKey)
	}
	if p.config.Timeout > 0 {
		p.api.SetTimeout(p.config.Timeout)
	}
	return nil
}

func (p *BallDontLieProvider) Source() clients.ExternalSource {
	return clients.ExternalSourceBallDontLie
}

// FetchGames retrieves the day's games and maps them to the core model.
func (p *BallDontLieProvider) FetchGames(ctx context.Context, date time.Time) ([]models.Game, error) {
	if p.api == nil {
		return nil, fmt.Errorf("balldontlie: provider not initialized")
	}

	apiGames, err := p.api.GetGamesByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("balldontlie: FetchGames error: %w", err)
	}

	games := make([]models.Game, 0, len(apiGames))
	for _, g := range apiGames {
		games = append(games, MapExternalGame(g, p.location))
	}
	return games, nil
}

// MapExternalGame maps an API game to a core Game.
func MapExternalGame(g bdl.Game, location *time.Location) models.Game {
	status, tipOff := mapStatus(g)

	label := g.Time
	if strings.TrimSpace(label) == "" {
		label = g.Status
		if !tipOff.IsZero() {
			label = tipOff.In(location).Format("3:04 PM MST")
		}
	}

	return models.Game{
		ID:           g.ID,
		Home:         models.TeamSide{FullName: g.HomeTeam.FullName, Abbreviation: g.HomeTeam.Abbreviation},
		Visitor:      models.TeamSide{FullName: g.VisitorTeam.FullName, Abbreviation: g.VisitorTeam.Abbreviation},
		Status:       status,
		Label:        label,
		HomeScore:    g.HomeTeamScore,
		VisitorScore: g.VisitorTeamScore,
	}
}

// mapStatus derives the lifecycle status. Before tip-off the API reports the
// scheduled start time in the status field and period 0.
func mapStatus(g bdl.Game) (models.GameStatus, time.Time) {
	raw := strings.TrimSpace(g.Status)

	if strings.HasPrefix(strings.ToLower(raw), "final") {
		return models.GameStatusFinal, time.Time{}
	}
	if tipOff, err := time.Parse(time.RFC3339, raw); err == nil {
		return models.GameStatusScheduled, tipOff
	}
	if g.Period == 0 {
		return models.GameStatusScheduled, time.Time{}
	}
	return models.GameStatusLive, time.Time{}
}
