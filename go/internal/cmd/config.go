package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/internal/events"
	"github.com/mcdev12/courtside/go/internal/feed"
	"github.com/mcdev12/courtside/go/internal/session"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

// Publisher kinds accepted in events.publisher
const (
	PublisherLog  = "log"
	PublisherNATS = "nats"
	PublisherNone = "none"
)

type Config struct {
	Server struct {
		Port     string `yaml:"port"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"server"`

	Feed struct {
		EnabledProviders []string               `yaml:"enabled_providers"`
		PollInterval     time.Duration          `yaml:"poll_interval"`
		TimeZone         string                 `yaml:"time_zone"`
		BallDontLie      feed.BallDontLieConfig `yaml:"balldontlie"`
	} `yaml:"feed"`

	Demo struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"demo"`

	Events struct {
		Publisher string            `yaml:"publisher"`
		NATS      events.NATSConfig `yaml:"nats"`
	} `yaml:"events"`
}

func defaultConfig() *Config {
	var config Config
	config.Server.Port = "8080"
	config.Server.LogLevel = "info"
	config.Feed.EnabledProviders = []string{string(clients.ExternalSourceBallDontLie)}
	config.Feed.PollInterval = session.DefaultPollInterval
	config.Feed.TimeZone = "America/New_York"
	config.Feed.BallDontLie.Timeout = 10 * time.Second
	config.Demo.Username = "demo"
	config.Demo.Password = "demo"
	config.Events.Publisher = PublisherLog
	config.Events.NATS = events.DefaultNATSConfig()
	return &config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// loadConfig reads path over the defaults; a missing file leaves the defaults
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.applyEnv()

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.LogLevel = getEnv("LOG_LEVEL", c.Server.LogLevel)
	c.Feed.BallDontLie.APIKey = getEnv("BALLDONTLIE_API_KEY", c.Feed.BallDontLie.APIKey)
	c.Events.Publisher = getEnv("EVENTS_PUBLISHER", c.Events.Publisher)
	c.Events.NATS.URL = getEnv("NATS_URL", c.Events.NATS.URL)
	c.Events.NATS.MaxReconnects = getEnvAsInt("NATS_MAX_RECONNECTS", c.Events.NATS.MaxReconnects)
}

func (c *Config) validate() error {
	if c.Feed.PollInterval <= 0 {
		return fmt.Errorf("feed.poll_interval must be positive, got %s", c.Feed.PollInterval)
	}
	for _, key := range c.Feed.EnabledProviders {
		if !clients.ValidateExternalSource(clients.ExternalSource(key)) {
			return fmt.Errorf("unknown feed provider %q", key)
		}
	}
	switch c.Events.Publisher {
	case PublisherLog, PublisherNATS, PublisherNone:
	default:
		return fmt.Errorf("unknown events publisher %q", c.Events.Publisher)
	}
	if c.Demo.Username == "" || c.Demo.Password == "" {
		return fmt.Errorf("demo identity requires a username and password")
	}
	return nil
}

// Location resolves the configured feed time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Feed.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", c.Feed.TimeZone, err)
	}
	return loc, nil
}
