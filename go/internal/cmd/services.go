package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/internal/engine"
	"github.com/mcdev12/courtside/go/internal/events"
	"github.com/mcdev12/courtside/go/internal/feed"
	"github.com/mcdev12/courtside/go/internal/gateway"
	"github.com/mcdev12/courtside/go/internal/identity"
	"github.com/mcdev12/courtside/go/internal/models"
	"github.com/mcdev12/courtside/go/internal/session"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Session   *session.Session
	Gateway   *gateway.Service
	Publisher events.Publisher
	closers   []func() error
}

// Close releases external connections held by the services
func (s *Services) Close() {
	s.Session.Close()
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			log.Error().Err(err).Msg("failed to close service dependency")
		}
	}
}

func setupServices(ctx context.Context, config *Config) (*Services, error) {
	// Wire up dependency injection chain
	// Identity store → Engine → Feed → Refresher → Session → Gateway
	clock := clockwork.NewRealClock()

	location, err := config.Location()
	if err != nil {
		return nil, err
	}

	// Identity
	store := identity.NewMemoryStore(map[string]identity.Record{
		config.Demo.Username: {Password: config.Demo.Password, Stats: models.BaselineStats()},
	})
	identityApp := identity.NewApp(store)

	// Engine
	eng := engine.New(identityApp)

	// Feed
	providers, err := setupFeedProviders(config, location)
	if err != nil {
		return nil, err
	}
	fetcher := feed.NewFetcher(providers, clock, location)

	// Events
	services := &Services{}
	publisher, err := setupPublisher(config, services)
	if err != nil {
		return nil, err
	}
	services.Publisher = publisher

	// Session
	refresher := session.NewRefresher(fetcher, eng, clock, config.Feed.PollInterval)
	services.Session = session.New(ctx, eng, refresher, publisher, clock)

	// Gateway
	services.Gateway = gateway.NewService(gateway.DefaultConfig(), services.Session)

	// Seed the board so logged-out clients see games
	refreshCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	services.Session.Refresh(refreshCtx)

	return services, nil
}

func setupFeedProviders(config *Config, location *time.Location) ([]feed.Provider, error) {
	registry := feed.NewRegistry()
	if err := registry.Register(string(clients.ExternalSourceBallDontLie), feed.NewBallDontLieProvider(config.Feed.BallDontLie, location)); err != nil {
		return nil, err
	}
	if err := registry.Register(string(clients.ExternalSourceFallback), feed.FallbackProvider{}); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(config.Feed.EnabledProviders))
	for _, key := range config.Feed.EnabledProviders {
		if key == string(clients.ExternalSourceBallDontLie) && config.Feed.BallDontLie.APIKey == "" {
			log.Warn().Str("provider", key).Msg("no API key configured, provider disabled")
			continue
		}
		keys = append(keys, key)
	}

	providers, err := registry.Enable(keys)
	if err != nil {
		return nil, fmt.Errorf("failed to enable feed providers: %w", err)
	}
	for _, provider := range providers {
		log.Info().Str("provider", string(provider.Source())).Msg("feed provider enabled")
	}
	return providers, nil
}

func setupPublisher(config *Config, services *Services) (events.Publisher, error) {
	switch config.Events.Publisher {
	case PublisherNATS:
		publisher, err := events.NewNATSPublisher(config.Events.NATS)
		if err != nil {
			return nil, err
		}
		services.closers = append(services.closers, publisher.Close)
		log.Info().Str("url", config.Events.NATS.URL).Msg("publishing events to NATS")
		return publisher, nil
	case PublisherNone:
		return events.NoopPublisher{}, nil
	default:
		return events.LogPublisher{}, nil
	}
}
