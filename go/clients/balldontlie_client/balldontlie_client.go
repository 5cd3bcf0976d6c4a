package balldontlie_client

import (
	"github.com/mcdev12/courtside/go/clients"
)

type BallDontLieClient struct {
	*clients.BaseClient
}

func NewBallDontLieClient(apiKey string) *BallDontLieClient {
	return NewBallDontLieClientWithURL(BaseURL, apiKey)
}

// NewBallDontLieClientWithURL points the client at a different host, used for tests and proxies
func NewBallDontLieClientWithURL(baseURL, apiKey string) *BallDontLieClient {
	client := &BallDontLieClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	if apiKey != "" {
		client.SetHeader(AuthorizationHeader, apiKey)
	}

	return client
}
