package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/internal/models"
)

// Provider defines the interface each game data source must implement.
type Provider interface {
	Init() error
	Source() clients.ExternalSource
	FetchGames(ctx context.Context, date time.Time) ([]models.Game, error)
}

// Registry holds the providers known to the process, keyed by source name
type Registry struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider implementation under a key.
// The provider will be initialized later when enabled.
func (r *Registry) Register(key string, provider Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if key == "" {
		return fmt.Errorf("provider key cannot be empty")
	}
	if _, exists := r.providers[key]; exists {
		return fmt.Errorf("provider already registered for key %q", key)
	}
	r.providers[key] = provider
	return nil
}

// Get retrieves a provider by key or returns an error if not found.
func (r *Registry) Get(key string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, exists := r.providers[key]
	if !exists {
		return nil, fmt.Errorf("no feed provider registered for key %q", key)
	}
	return provider, nil
}

// Initialize initializes a specific provider.
func (r *Registry) Initialize(key string) error {
	provider, err := r.Get(key)
	if err != nil {
		return err
	}
	if err := provider.Init(); err != nil {
		return fmt.Errorf("failed to init provider %q: %w", key, err)
	}
	return nil
}

// Enable initializes the providers named in keys and returns them in order
func (r *Registry) Enable(keys []string) ([]Provider, error) {
	enabled := make([]Provider, 0, len(keys))
	for _, key := range keys {
		if err := r.Initialize(key); err != nil {
			return nil, err
		}
		provider, err := r.Get(key)
		if err != nil {
			return nil, err
		}
		enabled = append(enabled, provider)
	}
	return enabled, nil
}
