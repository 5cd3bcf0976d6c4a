package identity

import (
	"fmt"
	"strings"

	"github.com/mcdev12/courtside/go/internal/models"
	"github.com/rs/zerolog/log"
)

// App applies credential and registration rules on top of a Store
type App struct {
	store Store
}

// NewApp creates a new identity App
func NewApp(store Store) *App {
	return &App{
		store: store,
	}
}

// Authenticate returns the stored stats when username and password match
func (a *App) Authenticate(username, password string) (models.UserStats, error) {
	record, ok := a.store.Get(username)
	if !ok || record.Password != password {
		return models.UserStats{}, fmt.Errorf("login %q: %w", username, ErrInvalidCredentials)
	}
	return record.Stats, nil
}

// Register creates a new identity with baseline stats
func (a *App) Register(username, password string) (models.UserStats, error) {
	if err := validateRegistration(username, password); err != nil {
		return models.UserStats{}, err
	}

	if _, exists := a.store.Get(username); exists {
		return models.UserStats{}, fmt.Errorf("register %q: %w", username, ErrUsernameTaken)
	}

	stats := models.BaselineStats()
	a.store.Set(username, Record{Password: password, Stats: stats})

	log.Info().Str("username", username).Msg("registered identity")
	return stats, nil
}

// Save writes stats back under an existing identity, keeping its password
func (a *App) Save(username string, stats models.UserStats) error {
	record, ok := a.store.Get(username)
	if !ok {
		return fmt.Errorf("save %q: %w", username, ErrUnknownIdentity)
	}
	record.Stats = stats
	a.store.Set(username, record)
	return nil
}

func validateRegistration(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrInvalidRegistration
	}
	return nil
}
