package driving

import "github.com/custodia-labs/reclaim/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, filling defaults for unset keys.
	Get() (*domain.ReclaimSettings, error)

	// Save persists settings.
	Save(settings *domain.ReclaimSettings) error

	// Set parses and persists a single setting by key.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.ReclaimSettings
}
