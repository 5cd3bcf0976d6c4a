package balldontlie_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type Team struct {
	ID           int    `json:"id"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	City         string `json:"city"`
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
}

type Game struct {
	ID               int64  `json:"id"`
	Date             string `json:"date"`
	Season           int    `json:"season"`
	Status           string `json:"status"`
	Period           int    `json:"period"`
	Time             string `json:"time"`
	Postseason       bool   `json:"postseason"`
	HomeTeamScore    int    `json:"home_team_score"`
	VisitorTeamScore int    `json:"visitor_team_score"`
	HomeTeam         Team   `json:"home_team"`
	VisitorTeam      Team   `json:"visitor_team"`
}

type Meta struct {
	NextCursor *int64 `json:"next_cursor"`
	PerPage    int    `json:"per_page"`
}

type GamesResponse struct {
	Data []Game `json:"data"`
	Meta Meta   `json:"meta"`
}

// GamesQuery filters the games endpoint
type GamesQuery struct {
	Dates   []time.Time
	PerPage int
	Cursor  *int64
}

func (q GamesQuery) encode() string {
	values := url.Values{}
	for _, d := range q.Dates {
		values.Add("dates[]", d.Format(DateLayout))
	}
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	values.Set("per_page", strconv.Itoa(perPage))
	if q.Cursor != nil {
		values.Set("cursor", strconv.FormatInt(*q.Cursor, 10))
	}
	return values.Encode()
}

// GetGames fetches a single page of games
func (c *BallDontLieClient) GetGames(ctx context.Context, query GamesQuery) (*GamesResponse, error) {
	endpoint := fmt.Sprintf("%s?%s", GamesEndpoint, query.encode())
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	var response GamesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return &response, nil
}

// GetGamesByDate fetches every game scheduled on the given day, following pagination
func (c *BallDontLieClient) GetGamesByDate(ctx context.Context, date time.Time) ([]Game, error) {
	query := GamesQuery{Dates: []time.Time{date}}

	var games []Game
	for {
		page, err := c.GetGames(ctx, query)
		if err != nil {
			return nil, err
		}
		games = append(games, page.Data...)

		if page.Meta.NextCursor == nil || len(page.Data) == 0 {
			return games, nil
		}
		query.Cursor = page.Meta.NextCursor
	}
}
