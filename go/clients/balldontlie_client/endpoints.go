package balldontlie_client

const (
	// Base URL
	BaseURL = "https://api.balldontlie.io/v1"

	// API Endpoints
	GamesEndpoint = "/games"

	// Headers
	AuthorizationHeader = "Authorization"

	// Query formats
	DateLayout     = "2006-01-02"
	DefaultPerPage = 100
)
