package balldontlie_client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mcdev12/courtside/go/clients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGamesByDate(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)
		assert.Equal(t, GamesEndpoint, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get(AuthorizationHeader))
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("dates[]"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("cursor") == "" {
			w.Write([]byte(`{"data":[{"id":10,"status":"Final","period":4,"time":"Final",
				"home_team_score":118,"visitor_team_score":112,
				"home_team":{"id":8,"full_name":"Denver Nuggets","abbreviation":"DEN"},
				"visitor_team":{"id":24,"full_name":"Phoenix Suns","abbreviation":"PHX"}}],
				"meta":{"next_cursor":10,"per_page":100}}`))
			return
		}
		assert.Equal(t, "10", r.URL.Query().Get("cursor"))
		w.Write([]byte(`{"data":[{"id":11,"status":"2024-03-02T00:30:00Z","period":0,
			"home_team":{"id":14,"full_name":"Los Angeles Lakers","abbreviation":"LAL"},
			"visitor_team":{"id":10,"full_name":"Golden State Warriors","abbreviation":"GSW"}}],
			"meta":{"per_page":100}}`))
	}))
	defer server.Close()

	client := NewBallDontLieClientWithURL(server.URL, "secret")
	games, err := client.GetGamesByDate(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, games, 2)
	assert.Len(t, requests, 2)
	assert.Equal(t, int64(10), games[0].ID)
	assert.Equal(t, "DEN", games[0].HomeTeam.Abbreviation)
	assert.Equal(t, 118, games[0].HomeTeamScore)
	assert.Equal(t, "Los Angeles Lakers", games[1].HomeTeam.FullName)
}

func TestGetGamesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewBallDontLieClientWithURL(server.URL, "")
	_, err := client.GetGamesByDate(context.Background(), time.Now())
	require.Error(t, err)

	var statusErr *clients.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestGetGamesMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewBallDontLieClientWithURL(server.URL, "key")
	_, err := client.GetGames(context.Background(), GamesQuery{})
	assert.ErrorContains(t, err, "failed to unmarshal response")
}

func TestGamesQueryEncode(t *testing.T) {
	cursor := int64(42)
	q := GamesQuery{
		Dates:   []time.Time{time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)},
		PerPage: 25,
		Cursor:  &cursor,
	}
	assert.Equal(t, "cursor=42&dates%5B%5D=2024-01-02&per_page=25", q.encode())
}
