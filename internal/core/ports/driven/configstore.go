package driven

import "github.com/custodia-labs/claims-cli/internal/core/domain"

// SettingsStore persists client settings.
// Implementations handle the file format and fill in defaults.
type SettingsStore interface {
	// Settings returns the stored settings with defaults applied.
	Settings() domain.ClientSettings

	// Save validates and persists settings.
	Save(settings domain.ClientSettings) error

	// Path returns the settings file path.
	Path() string
}
