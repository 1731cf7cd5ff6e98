package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// DefaultDirName is the settings directory under the user's home.
const DefaultDirName = ".claims"

// fileSettings is the on-disk layout. Zero values mean "use the default".
type fileSettings struct {
	API struct {
		BaseURL        string `toml:"base_url,omitempty"`
		TimeoutSeconds int    `toml:"timeout_seconds,omitempty"`
	} `toml:"api"`
	Upload struct {
		MaxBytes int64 `toml:"max_bytes,omitempty"`
	} `toml:"upload"`
	UI struct {
		ProgressIntervalMS int `toml:"progress_interval_ms,omitempty"`
	} `toml:"ui"`
}

func (f fileSettings) settings() domain.ClientSettings {
	s := domain.DefaultClientSettings()
	if f.API.BaseURL != "" {
		s.BaseURL = f.API.BaseURL
	}
	if f.API.TimeoutSeconds > 0 {
		s.Timeout = time.Duration(f.API.TimeoutSeconds) * time.Second
	}
	if f.Upload.MaxBytes > 0 {
		s.MaxUploadBytes = f.Upload.MaxBytes
	}
	if f.UI.ProgressIntervalMS > 0 {
		s.ProgressInterval = time.Duration(f.UI.ProgressIntervalMS) * time.Millisecond
	}
	return s
}

func toFile(s domain.ClientSettings) fileSettings {
	var f fileSettings
	f.API.BaseURL = s.BaseURL
	f.API.TimeoutSeconds = int(s.Timeout / time.Second)
	f.Upload.MaxBytes = s.MaxUploadBytes
	f.UI.ProgressIntervalMS = int(s.ProgressInterval / time.Millisecond)
	return f
}

// SettingsStore is a file-based implementation of driven.SettingsStore using TOML.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	settings domain.ClientSettings
}

// NewSettingsStore creates a TOML-backed settings store.
// If configDir is empty, defaults to ~/.claims/config.toml.
// A missing file is not an error; defaults apply until Save is called.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, DefaultDirName)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
		settings: domain.DefaultClientSettings(),
	}
	if err := s.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Settings returns the loaded settings with defaults applied.
func (s *SettingsStore) Settings() domain.ClientSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Save validates settings and writes them to disk.
func (s *SettingsStore) Save(settings domain.ClientSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(toFile(settings))
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

// Load reads settings from disk.
func (s *SettingsStore) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var f fileSettings
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	settings := f.settings()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%s: %w", s.filePath, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
