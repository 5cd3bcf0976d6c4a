package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, session.DefaultPollInterval, config.Feed.PollInterval)
	assert.Equal(t, []string{string(clients.ExternalSourceBallDontLie)}, config.Feed.EnabledProviders)
	assert.Equal(t, "demo", config.Demo.Username)
	assert.Equal(t, PublisherLog, config.Events.Publisher)
	assert.Equal(t, "courtside.events", config.Events.NATS.SubjectPrefix)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
feed:
  enabled_providers: [fallback]
  poll_interval: 5m
  time_zone: UTC
  balldontlie:
    api_base_url: http://localhost:1234
    timeout: 3s
demo:
  username: coach
  password: secret
events:
  publisher: nats
  nats:
    url: nats://nats:4222
`)

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, []string{"fallback"}, config.Feed.EnabledProviders)
	assert.Equal(t, 5*time.Minute, config.Feed.PollInterval)
	assert.Equal(t, "http://localhost:1234", config.Feed.BallDontLie.APIBaseURL)
	assert.Equal(t, 3*time.Second, config.Feed.BallDontLie.Timeout)
	assert.Equal(t, "coach", config.Demo.Username)
	assert.Equal(t, PublisherNATS, config.Events.Publisher)
	assert.Equal(t, "nats://nats:4222", config.Events.NATS.URL)
	// Unset keys keep their defaults
	assert.Equal(t, "courtside.events", config.Events.NATS.SubjectPrefix)

	loc, err := config.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("BALLDONTLIE_API_KEY", "key-from-env")
	t.Setenv("NATS_URL", "nats://override:4222")
	t.Setenv("NATS_MAX_RECONNECTS", "3")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := loadConfig(writeConfig(t, "server:\n  port: \"9090\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "7070", config.Server.Port)
	assert.Equal(t, "debug", config.Server.LogLevel)
	assert.Equal(t, "key-from-env", config.Feed.BallDontLie.APIKey)
	assert.Equal(t, "nats://override:4222", config.Events.NATS.URL)
	assert.Equal(t, 3, config.Events.NATS.MaxReconnects)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{"malformed yaml", "server: [", "failed to parse config"},
		{"unknown provider", "feed:\n  enabled_providers: [espn]\n", "unknown feed provider"},
		{"zero poll interval", "feed:\n  poll_interval: 0s\n", "poll_interval must be positive"},
		{"unknown publisher", "events:\n  publisher: kafka\n", "unknown events publisher"},
		{"empty demo password", "demo:\n  password: \"\"\n", "demo identity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.contents))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSetupFeedProviders(t *testing.T) {
	config := defaultConfig()
	config.Feed.EnabledProviders = []string{"balldontlie", "fallback"}

	// Without an API key the balldontlie provider is skipped
	providers, err := setupFeedProviders(config, time.UTC)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, clients.ExternalSourceFallback, providers[0].Source())

	config.Feed.BallDontLie.APIKey = "key"
	providers, err = setupFeedProviders(config, time.UTC)
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, clients.ExternalSourceBallDontLie, providers[0].Source())
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("COURTSIDE_TEST_INT", "not-a-number")
	assert.Equal(t, 5, getEnvAsInt("COURTSIDE_TEST_INT", 5))

	t.Setenv("COURTSIDE_TEST_INT", "12")
	assert.Equal(t, 12, getEnvAsInt("COURTSIDE_TEST_INT", 5))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLogLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("loud"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel(""))
}
