package identity

import (
	"sync"

	"github.com/mcdev12/courtside/go/internal/models"
)

// Record is what the store keeps per username
type Record struct {
	Password string           `json:"-"`
	Stats    models.UserStats `json:"stats"`
}

// Store is a get/set-by-username key-value store
type Store interface {
	Get(username string) (Record, bool)
	Set(username string, record Record)
}

// MemoryStore keeps identities for the lifetime of the process
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates a store pre-populated with seed
func NewMemoryStore(seed map[string]Record) *MemoryStore {
	records := make(map[string]Record, len(seed))
	for username, record := range seed {
		records[username] = record
	}
	return &MemoryStore{records: records}
}

func (s *MemoryStore) Get(username string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[username]
	return record, ok
}

func (s *MemoryStore) Set(username string, record Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[username] = record
}

// Len returns the number of identities held
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
