package models

// GameStatus is the lifecycle status of a game as reported by the feed
type GameStatus string

const (
	GameStatusScheduled GameStatus = "Scheduled"
	GameStatusLive      GameStatus = "Live"
	GameStatusFinal     GameStatus = "Final"
)

// TeamSide is one side of a matchup
type TeamSide struct {
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
}

// Game represents one matchup in a feed snapshot
type Game struct {
	ID           int64      `json:"id"`
	Home         TeamSide   `json:"home_team"`
	Visitor      TeamSide   `json:"visitor_team"`
	Status       GameStatus `json:"status"`
	Label        string     `json:"time"`
	HomeScore    int        `json:"home_team_score"`
	VisitorScore int        `json:"visitor_team_score"`
}

// IsOpen reports whether predictions may still be placed on the game
func (g Game) IsOpen() bool {
	return g.Status == GameStatusScheduled
}
