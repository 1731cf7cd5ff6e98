package memory

import (
	"sync"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is an in-memory implementation of driven.SettingsStore for testing.
type SettingsStore struct {
	mu       sync.RWMutex
	settings domain.ClientSettings
	saves    int
}

// NewSettingsStore creates a store holding the default settings.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{settings: domain.DefaultClientSettings()}
}

// Settings returns the current settings.
func (s *SettingsStore) Settings() domain.ClientSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Save validates and keeps settings.
func (s *SettingsStore) Save(settings domain.ClientSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *SettingsStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Path returns an empty string for the in-memory store.
func (s *SettingsStore) Path() string {
	return ""
}
