package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/courtside/go/clients"
	bdl "github.com/mcdev12/courtside/go/clients/balldontlie_client"
	"github.com/mcdev12/courtside/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	source clients.ExternalSource
	games  []models.Game
	err    error
	calls  int
	dates  []time.Time
}

func (s *stubProvider) Init() error { return nil }

func (s *stubProvider) Source() clients.ExternalSource { return s.source }

func (s *stubProvider) FetchGames(ctx context.Context, date time.Time) ([]models.Game, error) {
	s.calls++
	s.dates = append(s.dates, date)
	return s.games, s.err
}

func TestFallbackGamesCoverEveryStatus(t *testing.T) {
	games := FallbackGames()
	require.Len(t, games, 3)

	statuses := map[models.GameStatus]bool{}
	for _, g := range games {
		statuses[g.Status] = true
	}
	assert.Len(t, statuses, 3)
	assert.Equal(t, FallbackGames(), games, "deterministic")

	final := games[2]
	assert.Equal(t, models.GameStatusFinal, final.Status)
	assert.Equal(t, 118, final.HomeScore)
	assert.Equal(t, 112, final.VisitorScore)
}

func TestFetcherSubstitutesFallbackOnError(t *testing.T) {
	failing := &stubProvider{source: clients.ExternalSourceBallDontLie, err: errors.New("boom")}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC))
	f := NewFetcher([]Provider{failing}, clock, time.UTC)

	result := f.Fetch(context.Background())

	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, clients.ExternalSourceFallback, result.Source)
	assert.Equal(t, FallbackGames(), result.Games)
	assert.Equal(t, clock.Now(), result.FetchedAt)
}

func TestFetcherSubstitutesFallbackOnEmpty(t *testing.T) {
	empty := &stubProvider{source: clients.ExternalSourceBallDontLie}
	f := NewFetcher([]Provider{empty}, clockwork.NewFakeClock(), nil)

	result := f.Fetch(context.Background())
	assert.Equal(t, clients.ExternalSourceFallback, result.Source)
	assert.Len(t, result.Games, 3)
}

func TestFetcherUsesFirstProviderWithGames(t *testing.T) {
	live := &stubProvider{
		source: clients.ExternalSourceBallDontLie,
		games:  []models.Game{{ID: 77, Status: models.GameStatusScheduled}},
	}
	f := NewFetcher([]Provider{live}, clockwork.NewFakeClock(), nil)

	result := f.Fetch(context.Background())
	assert.Equal(t, clients.ExternalSourceBallDontLie, result.Source)
	assert.Equal(t, live.games, result.Games)
}

func TestFetcherTodayUsesLocation(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC on March 2nd is still March 1st in New York
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 2, 2, 0, 0, 0, time.UTC))
	provider := &stubProvider{source: clients.ExternalSourceBallDontLie}
	f := NewFetcher([]Provider{provider}, clock, newYork)

	f.Fetch(context.Background())
	require.Len(t, provider.dates, 1)
	assert.Equal(t, "2024-03-01", provider.dates[0].Format("2006-01-02"))
}

func TestMapExternalGameStatuses(t *testing.T) {
	tests := []struct {
		name   string
		game   bdl.Game
		status models.GameStatus
		label  string
	}{
		{
			name:   "final",
			game:   bdl.Game{Status: "Final", Period: 4, Time: "Final"},
			status: models.GameStatusFinal,
			label:  "Final",
		},
		{
			name:   "final overtime",
			game:   bdl.Game{Status: "Final/OT", Period: 5},
			status: models.GameStatusFinal,
			label:  "Final/OT",
		},
		{
			name:   "scheduled with tip-off timestamp",
			game:   bdl.Game{Status: "2024-03-02T00:30:00Z"},
			status: models.GameStatusScheduled,
			label:  "12:30 AM UTC",
		},
		{
			name:   "scheduled free text",
			game:   bdl.Game{Status: "7:30 pm ET", Period: 0},
			status: models.GameStatusScheduled,
			label:  "7:30 pm ET",
		},
		{
			name:   "in progress",
			game:   bdl.Game{Status: "2nd Qtr", Period: 2, Time: "Q2 8:45"},
			status: models.GameStatusLive,
			label:  "Q2 8:45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := MapExternalGame(tt.game, time.UTC)
			assert.Equal(t, tt.status, game.Status)
			assert.Equal(t, tt.label, game.Label)
		})
	}
}

func TestBallDontLieProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get(bdl.AuthorizationHeader))
		w.Write([]byte(`{"data":[{"id":5,"status":"Final","period":4,"time":"Final",
			"home_team_score":99,"visitor_team_score":101,
			"home_team":{"full_name":"Boston Celtics","abbreviation":"BOS"},
			"visitor_team":{"full_name":"Miami Heat","abbreviation":"MIA"}}],"meta":{}}`))
	}))
	defer server.Close()

	p := NewBallDontLieProvider(BallDontLieConfig{APIBaseURL: server.URL, APIKey: "key", Timeout: time.Second}, nil)
	require.NoError(t, p.Init())

	games, err := p.FetchGames(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, models.Game{
		ID:           5,
		Home:         models.TeamSide{FullName: "Boston Celtics", Abbreviation: "BOS"},
		Visitor:      models.TeamSide{FullName: "Miami Heat", Abbreviation: "MIA"},
		Status:       models.GameStatusFinal,
		Label:        "Final",
		HomeScore:    99,
		VisitorScore: 101,
	}, games[0])
}

func TestBallDontLieProviderRequiresKey(t *testing.T) {
	p := NewBallDontLieProvider(BallDontLieConfig{}, nil)
	assert.Error(t, p.Init())

	_, err := p.FetchGames(context.Background(), time.Now())
	assert.ErrorContains(t, err, "not initialized")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("fallback", FallbackProvider{}))
	assert.Error(t, r.Register("fallback", FallbackProvider{}))
	assert.Error(t, r.Register("", FallbackProvider{}))

	_, err := r.Get("missing")
	assert.Error(t, err)

	enabled, err := r.Enable([]string{"fallback"})
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, clients.ExternalSourceFallback, enabled[0].Source())

	require.NoError(t, r.Register("balldontlie", NewBallDontLieProvider(BallDontLieConfig{}, nil)))
	_, err = r.Enable([]string{"balldontlie"})
	assert.ErrorContains(t, err, "failed to init provider")
}

func TestBallDontLieProviderInitDefaultsToPublicAPI(t *testing.T) {
	p := NewBallDontLieProvider(BallDontLieConfig{APIKey: "key"}, nil)
	require.NoError(t, p.Init())
	assert.Equal(t, clients.ExternalSourceBallDontLie, p.Source())
}
